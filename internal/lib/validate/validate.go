// Package validate собирает валидатор тел запросов: имена полей берутся из json-тегов,
// дополнительно зарегистрированы теги iban и currency.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pis-contract/internal/lib/iban"
)

// New возвращает настроенный validator.Validate.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Ошибки регистрации возможны только при пустом теге или nil-функции.
	_ = v.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
		return iban.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return IsCurrencyCode(fl.Field().String())
	})
	return v
}

// IsCurrencyCode проверяет формат кода валюты ISO 4217: три заглавные латинские буквы.
func IsCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Path возвращает путь поля без имени корневой структуры,
// например bankPaymentMethod.creditorAccount.iban.
func Path(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
