// Package client регистрирует клиентов API и проверяет их учётные данные.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/pis-contract/internal/lib/password"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/models"
	"github.com/magabrotheeeer/pis-contract/internal/storage"
)

// ErrUnauthorized возвращается при неизвестном Client-Id или неверном секрете.
var ErrUnauthorized = errors.New("unauthorized")

// Repository хранилище клиентов.
type Repository interface {
	UpsertClient(ctx context.Context, client models.Client) error
	ReadClient(ctx context.Context, clientID string) (*models.Client, error)
}

// Service сервис клиентов API.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Register сохраняет клиента с bcrypt-хэшем секрета. Повторная регистрация обновляет секрет.
func (s *Service) Register(ctx context.Context, clientID, secret, name string) error {
	const op = "services.client.Register"
	hash, err := password.GetHash(secret)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err = s.repo.UpsertClient(ctx, models.Client{
		ClientID:   clientID,
		SecretHash: hash,
		Name:       name,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Authenticate проверяет пару Client-Id / Client-Secret.
func (s *Service) Authenticate(ctx context.Context, clientID, secret string) error {
	const op = "services.client.Authenticate"
	log := s.log.With(slog.String("op", op), sl.Client(clientID))

	if clientID == "" || secret == "" {
		return ErrUnauthorized
	}
	client, err := s.repo.ReadClient(ctx, clientID)
	if errors.Is(err, storage.ErrClientNotFound) {
		log.Debug("unknown client")
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = password.CompareHash(client.SecretHash, secret); err != nil {
		log.Debug("secret mismatch")
		return ErrUnauthorized
	}
	return nil
}
