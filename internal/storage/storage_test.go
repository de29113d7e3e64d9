package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pis-contract/internal/models"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestRebind(t *testing.T) {
	sqlite := &Storage{Driver: DriverSQLite}
	pg := &Storage{Driver: DriverPostgres}
	query := "SELECT * FROM payments WHERE id = $1 AND client_id = $2"

	assert.Equal(t, "SELECT * FROM payments WHERE id = ? AND client_id = ?", sqlite.rebind(query))
	assert.Equal(t, query, pg.rebind(query))
}

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2026, 3, 1, 10, 30, 0, 123000000, time.UTC)

	tests := []struct {
		name    string
		src     any
		wantErr bool
	}{
		{name: "time value", src: want},
		{name: "rfc3339 string", src: want.Format(time.RFC3339Nano)},
		{name: "bytes", src: []byte(want.Format(time.RFC3339Nano))},
		{name: "garbage", src: "yesterday", wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timestamp
			err := ts.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestClients_SQLite(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.ReadClient(ctx, "missing")
	require.ErrorIs(t, err, ErrClientNotFound)

	require.NoError(t, s.UpsertClient(ctx, models.Client{ClientID: "c1", SecretHash: "h1", Name: "first"}))
	require.NoError(t, s.UpsertClient(ctx, models.Client{ClientID: "c1", SecretHash: "h2", Name: "second"}))

	client, err := s.ReadClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "h2", client.SecretHash)
	assert.Equal(t, "second", client.Name)
	assert.False(t, client.CreatedAt.IsZero())
}

func TestPayments_SQLite(t *testing.T) {
	s := newTestSQLite(t)
	f := &testDataFactory{t: t, storage: s}
	ctx := context.Background()

	f.createClient("c1")
	created := f.createPayment("c1")

	t.Run("read", func(t *testing.T) {
		got, err := s.ReadPayment(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "c1", got.ClientID)
		assert.Equal(t, "0.01", got.Amount.StringFixed(2))
		assert.Equal(t, created.BankPaymentMethod, got.BankPaymentMethod)
		assert.Equal(t, models.BankStatusStarted, got.BankStatus)
		assert.Equal(t, created.ConfirmLink, got.ConfirmLink)
		assert.Equal(t, "device-1", got.PSUDeviceID)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.ReadPayment(ctx, "00000000-0000-4000-8000-000000000000")
		require.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("without reference", func(t *testing.T) {
		p := f.createPayment("c1")
		p.BankPaymentMethod.InformationStructured = nil

		_, err := s.DB.ExecContext(ctx, `UPDATE payments SET information_reference = NULL WHERE id = ?`, p.ID)
		require.NoError(t, err)

		got, err := s.ReadPayment(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.BankPaymentMethod.InformationStructured)
	})

	t.Run("update status", func(t *testing.T) {
		n, err := s.UpdatePaymentStatus(ctx, created.ID, models.BankStatusAccepted, models.StatusGroupPending)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := s.ReadPayment(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BankStatusAccepted, got.BankStatus)
		assert.Equal(t, models.StatusGroupPending, got.StatusGroup)

		n, err = s.UpdatePaymentStatus(ctx, "00000000-0000-4000-8000-000000000000", models.BankStatusAccepted, models.StatusGroupPending)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestCanceledContext(t *testing.T) {
	s := newTestSQLite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReadPayment(ctx, "id")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.UpsertClient(ctx, models.Client{ClientID: "c"}), context.Canceled)
}
