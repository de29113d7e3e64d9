// Package password хеширует и проверяет секреты клиентов API.
//
// Секреты хранятся только в виде bcrypt-хэша; исходное значение приходит
// в заголовке Client-Secret и сравнивается с хэшем при каждом запросе.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret возвращается, если секрет пустой.
var ErrEmptySecret = errors.New("empty secret")

// GetHash возвращает bcrypt-хэш секрета.
func GetHash(secret string) (string, error) {
	const op = "password.GetHash"
	if secret == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает bcrypt-хэш с переданным секретом.
// Возвращает nil при совпадении.
func CompareHash(hash, secret string) error {
	const op = "password.CompareHash"
	if secret == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
