// Package verifier проверяет контракт API платёжной инициации:
// отправляет запросы к POST /pis/payment и GET /pis/payment/{id}
// и сверяет коды ответов, тела и сохранность платежей.
package verifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Fixture учётные данные клиента для проверок. Проверки только читают их.
type Fixture struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURL  string `json:"redirectUrl"`
	PSUDeviceID  string `json:"psuDeviceId"`
}

// LoadFixture читает JSON-файл с учётными данными.
func LoadFixture(path string) (*Fixture, error) {
	const op = "verifier.LoadFixture"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var f Fixture
	if err = json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &f, nil
}

func (f Fixture) validate() error {
	switch {
	case f.ClientID == "":
		return errors.New("clientId is empty")
	case f.ClientSecret == "":
		return errors.New("clientSecret is empty")
	case f.RedirectURL == "":
		return errors.New("redirectUrl is empty")
	}
	return nil
}

// Credentials учётные данные из фикстуры.
func (f Fixture) Credentials() Credentials {
	return Credentials{
		ClientID:     f.ClientID,
		ClientSecret: f.ClientSecret,
		RedirectURL:  f.RedirectURL,
	}
}

// ReversedClientID возвращает идентификатор клиента, записанный задом наперёд.
// Для палиндрома добавляется суффикс, чтобы результат не совпал с исходным.
func (f Fixture) ReversedClientID() string {
	r := []rune(f.ClientID)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	if reversed := string(r); reversed != f.ClientID {
		return reversed
	}
	return f.ClientID + "-reversed"
}
