package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/pis-contract/internal/models"
)

// CreatePayment сохраняет новый платёж.
func (s *Storage) CreatePayment(ctx context.Context, p *models.Payment) error {
	const op = "storage.CreatePayment"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	var reference sql.NullString
	if info := p.BankPaymentMethod.InformationStructured; info != nil {
		reference = sql.NullString{String: info.Reference, Valid: true}
	}

	query := `INSERT INTO payments (id, client_id, amount, currency_code, description,
				  creditor_name, end_to_end_id, information_reference, creditor_iban,
				  bank_status, status_group, confirm_link, redirect_url, psu_device_id,
				  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := s.DB.ExecContext(ctx, s.rebind(query),
		p.ID, p.ClientID, p.Amount.StringFixed(2), p.CurrencyCode, p.Description,
		p.BankPaymentMethod.CreditorName, p.BankPaymentMethod.EndToEndID, reference,
		p.BankPaymentMethod.CreditorAccount.IBAN,
		p.BankStatus, p.StatusGroup, p.ConfirmLink, p.RedirectURL, p.PSUDeviceID,
		s.timeArg(p.CreatedAt), s.timeArg(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadPayment возвращает платёж по идентификатору.
func (s *Storage) ReadPayment(ctx context.Context, id string) (*models.Payment, error) {
	const op = "storage.ReadPayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, client_id, amount, currency_code, description,
				  creditor_name, end_to_end_id, information_reference, creditor_iban,
				  bank_status, status_group, confirm_link, redirect_url, psu_device_id,
				  created_at, updated_at
			  FROM payments WHERE id = $1`

	var (
		p         models.Payment
		amount    decimal.Decimal
		reference sql.NullString
		createdAt timestamp
		updatedAt timestamp
	)
	err := s.DB.QueryRowContext(ctx, s.rebind(query), id).Scan(
		&p.ID, &p.ClientID, &amount, &p.CurrencyCode, &p.Description,
		&p.BankPaymentMethod.CreditorName, &p.BankPaymentMethod.EndToEndID, &reference,
		&p.BankPaymentMethod.CreditorAccount.IBAN,
		&p.BankStatus, &p.StatusGroup, &p.ConfirmLink, &p.RedirectURL, &p.PSUDeviceID,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.Amount = amount
	if reference.Valid {
		p.BankPaymentMethod.InformationStructured = &models.InformationStructured{Reference: reference.String}
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// UpdatePaymentStatus меняет статус платежа и возвращает количество изменённых строк.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id, bankStatus, statusGroup string) (int, error) {
	const op = "storage.UpdatePaymentStatus"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `UPDATE payments
			  SET bank_status = $1, status_group = $2, updated_at = $3
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, s.rebind(query), bankStatus, statusGroup, s.timeArg(time.Now()), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
