package verifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
)

// ErrAssertion оборачивает каждое проваленное утверждение.
var ErrAssertion = errors.New("assertion failed")

const maxBodyInError = 512

// failures собирает сообщения testify вместо *testing.T, чтобы проверки
// работали и в CLI, и в go test.
type failures struct {
	messages []string
}

func (f *failures) Errorf(format string, args ...any) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}

// Expect цепочка утверждений об одном ответе поверх testify/assert.
// После первого провала остальные утверждения не проверяются.
type Expect struct {
	resp   *Response
	failed failures
	is     *assert.Assertions
}

// That начинает цепочку утверждений.
func That(resp *Response) *Expect {
	e := &Expect{resp: resp}
	e.is = assert.New(&e.failed)
	return e
}

// Status проверяет HTTP-код ответа.
func (e *Expect) Status(code int) *Expect {
	if e.done() {
		return e
	}
	e.is.Equal(code, e.resp.StatusCode, "status")
	return e
}

// Equal проверяет, что строковое поле path равно want.
func (e *Expect) Equal(path, want string) *Expect {
	if e.done() {
		return e
	}
	got := e.resp.Get(path)
	if e.is.True(got.Exists(), "%s: field is missing", path) {
		e.is.Equal(want, got.String(), path)
	}
	return e
}

// Contains проверяет, что строковое поле path содержит substr.
func (e *Expect) Contains(path, substr string) *Expect {
	if e.done() {
		return e
	}
	got := e.resp.Get(path)
	if e.is.True(got.Exists(), "%s: field is missing", path) {
		e.is.Contains(got.String(), substr, path)
	}
	return e
}

// NotEmpty проверяет, что поле path задано и не пустое.
func (e *Expect) NotEmpty(path string) *Expect {
	if e.done() {
		return e
	}
	e.is.NotEmpty(e.resp.Get(path).String(), path)
	return e
}

// Err возвращает первое проваленное утверждение или nil.
func (e *Expect) Err() error {
	if !e.done() {
		return nil
	}
	body := string(e.resp.Body)
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError] + "..."
	}
	return fmt.Errorf("%w: %s\n\tBody:\t%s", ErrAssertion, strings.TrimSpace(e.failed.messages[0]), body)
}

func (e *Expect) done() bool {
	return len(e.failed.messages) > 0
}
