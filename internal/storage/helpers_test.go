package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pis-contract/internal/migrations"
	"github.com/magabrotheeeer/pis-contract/internal/models"
)

// testDataFactory создаёт тестовые записи в хранилище.
type testDataFactory struct {
	t       *testing.T
	storage *Storage
}

func newTestSQLite(t *testing.T) *Storage {
	t.Helper()
	s, err := New(DriverSQLite, filepath.Join(t.TempDir(), "pis.db"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, DriverSQLite))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func (f *testDataFactory) createClient(clientID string) {
	f.t.Helper()
	err := f.storage.UpsertClient(context.Background(), models.Client{
		ClientID:   clientID,
		SecretHash: "$2a$10$hash",
		Name:       "client " + clientID,
	})
	require.NoError(f.t, err)
}

func (f *testDataFactory) createPayment(clientID string) *models.Payment {
	f.t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &models.Payment{
		ID:           id,
		ClientID:     clientID,
		Amount:       decimal.RequireFromString("0.01"),
		CurrencyCode: "EUR",
		Description:  "test",
		BankPaymentMethod: models.BankPaymentMethod{
			CreditorName:          "Padėk gatvės vaikams",
			EndToEndID:            "1234567890",
			InformationStructured: &models.InformationStructured{Reference: "Parama"},
			CreditorAccount:       models.CreditorAccount{IBAN: "LT177300010119765165"},
		},
		BankStatus:  models.BankStatusStarted,
		StatusGroup: models.StatusGroupStarted,
		ConfirmLink: "http://localhost:8080/pis/payment/" + id + "/confirm?token=t",
		RedirectURL: "https://example.com/return",
		PSUDeviceID: "device-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(f.t, f.storage.CreatePayment(context.Background(), p))
	return p
}
