// Package amount разбирает и проверяет сумму платежа из тела запроса.
//
// Сумма принимается числом или строкой, которую можно привести к числу.
// Тексты ошибок повторяют ответы API и возвращаются клиенту в поле data.
package amount

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision максимальное количество знаков после запятой.
const Precision = 2

// MaxTextLength максимальная длина записи суммы.
const MaxTextLength = 64

// Экспоненты за этими границами дают значения заведомо вне [Min, Max].
// Проверка идёт до сравнений: decimal выравнивает экспоненты, и 1e10000000
// превращается в число из десяти миллионов цифр.
const (
	maxExponent = 16
	minExponent = -(MaxTextLength + Precision)
)

var (
	// Min минимальная допустимая сумма.
	Min = decimal.New(1, -Precision)
	// Max максимальная сумма, помещающаяся в NUMERIC(18,2).
	Max = decimal.RequireFromString("9999999999999999.99")
)

var (
	ErrRequired  = errors.New(`"amount" is required`)
	ErrNotNumber = errors.New(`"amount" must be a number`)
	ErrTooSmall  = errors.New(`"amount" must be greater than or equal to 0.01`)
	ErrTooLarge  = errors.New(`"amount" must be less than or equal to 9999999999999999.99`)
	ErrPrecision = errors.New(`"amount" contains an invalid value`)
)

// Parse проверяет сырое JSON-значение суммы и возвращает его в виде decimal.
//
// Порядок проверок: наличие, тип, длина записи, минимум, максимум, точность.
func Parse(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return decimal.Zero, ErrRequired
	}

	var text string
	switch c := trimmed[0]; {
	case c == '"':
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return decimal.Zero, ErrNotNumber
		}
		text = strings.TrimSpace(text)
	case c == '-' || (c >= '0' && c <= '9'):
		text = string(trimmed)
	default:
		return decimal.Zero, ErrNotNumber
	}
	if text == "" {
		return decimal.Zero, ErrNotNumber
	}
	if len(text) > MaxTextLength {
		return decimal.Zero, ErrPrecision
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrNotNumber
	}
	// Коэффициент не длиннее MaxTextLength цифр, поэтому при exp < minExponent
	// значение меньше Min, а при exp > maxExponent больше Max.
	exp := value.Exponent()
	switch {
	case value.Sign() <= 0 || exp < minExponent:
		return decimal.Zero, ErrTooSmall
	case exp > maxExponent:
		return decimal.Zero, ErrTooLarge
	}
	if value.LessThan(Min) {
		return decimal.Zero, ErrTooSmall
	}
	if value.GreaterThan(Max) {
		return decimal.Zero, ErrTooLarge
	}
	if !value.Equal(value.Round(Precision)) {
		return decimal.Zero, ErrPrecision
	}
	return value, nil
}

// Format возвращает сумму в виде строки с фиксированной точкой, например "0.01".
func Format(value decimal.Decimal) string {
	return value.StringFixed(Precision)
}
