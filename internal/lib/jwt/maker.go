// Package jwt подписывает и проверяет токены ссылок подтверждения платежа.
//
// Токен содержит идентификатор платежа в поле sub и ограничен по времени жизни.
// Ссылка подтверждения несёт токен в параметре token, поэтому подделать
// подтверждение чужого платежа без секретного ключа нельзя.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer значение поля iss в выпускаемых токенах.
const Issuer = "pis"

// ErrSubjectMismatch возвращается, если токен выпущен для другого платежа.
var ErrSubjectMismatch = errors.New("token subject mismatch")

// ConfirmClaims claims токена подтверждения.
type ConfirmClaims struct {
	jwt.RegisteredClaims
}

// MakerImpl выпускает и проверяет токены с общим секретом HS256.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт MakerImpl.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken выпускает токен подтверждения для платежа.
func (j *MakerImpl) GenerateToken(paymentID string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := ConfirmClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   paymentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseToken проверяет подпись, срок действия и издателя токена
// и сверяет его с ожидаемым идентификатором платежа.
func (j *MakerImpl) ParseToken(tokenStr, paymentID string) error {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &ConfirmClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*ConfirmClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject != paymentID {
		return fmt.Errorf("%s: %w", op, ErrSubjectMismatch)
	}
	return nil
}
