// Package iban проверяет номер счёта в формате IBAN (ISO 13616).
//
// Длина, структура BBAN для страны и контрольная сумма mod 97 проверяются
// библиотекой github.com/jbub/banking; здесь только нормализация записи.
package iban

import (
	"strings"

	"github.com/jbub/banking/iban"
)

// Normalize убирает пробелы и приводит номер к верхнему регистру.
func Normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

// Validate возвращает ошибку библиотеки для некорректного IBAN.
func Validate(s string) error {
	return iban.Validate(Normalize(s))
}

// Valid сообщает, является ли строка корректным IBAN.
func Valid(s string) bool {
	return Validate(s) == nil
}
