package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/pis-contract/internal/models"
)

// UpsertClient создаёт клиента или обновляет хэш секрета и имя существующего.
func (s *Storage) UpsertClient(ctx context.Context, client models.Client) error {
	const op = "storage.UpsertClient"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO clients (client_id, secret_hash, name, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (client_id) DO UPDATE
			  SET secret_hash = excluded.secret_hash, name = excluded.name`
	_, err := s.DB.ExecContext(ctx, s.rebind(query),
		client.ClientID, client.SecretHash, client.Name, s.timeArg(time.Now()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadClient возвращает клиента по идентификатору.
func (s *Storage) ReadClient(ctx context.Context, clientID string) (*models.Client, error) {
	const op = "storage.ReadClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT client_id, secret_hash, name, created_at FROM clients WHERE client_id = $1`
	var (
		client    models.Client
		createdAt timestamp
	)
	err := s.DB.QueryRowContext(ctx, s.rebind(query), clientID).
		Scan(&client.ClientID, &client.SecretHash, &client.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrClientNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	client.CreatedAt = createdAt.Time
	return &client, nil
}
