package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pis-contract/internal/lib/password"
	"github.com/magabrotheeeer/pis-contract/internal/models"
	"github.com/magabrotheeeer/pis-contract/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) UpsertClient(ctx context.Context, client models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockRepository) ReadClient(ctx context.Context, clientID string) (*models.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Register(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpsertClient", mock.Anything, mock.MatchedBy(func(c models.Client) bool {
		return c.ClientID == "client-1" && c.Name == "demo" &&
			password.CompareHash(c.SecretHash, "s3cret") == nil
	})).Return(nil).Once()

	err := New(repo, newNoopLogger()).Register(context.Background(), "client-1", "s3cret", "demo")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_RegisterEmptySecret(t *testing.T) {
	repo := new(MockRepository)

	err := New(repo, newNoopLogger()).Register(context.Background(), "client-1", "", "demo")
	require.ErrorIs(t, err, password.ErrEmptySecret)
	repo.AssertNotCalled(t, "UpsertClient", mock.Anything, mock.Anything)
}

func TestService_Authenticate(t *testing.T) {
	hash, err := password.GetHash("s3cret")
	require.NoError(t, err)
	stored := &models.Client{ClientID: "client-1", SecretHash: hash}

	tests := []struct {
		name       string
		clientID   string
		secret     string
		setupMocks func(r *MockRepository)
		wantErr    error
	}{
		{
			name:     "valid credentials",
			clientID: "client-1",
			secret:   "s3cret",
			setupMocks: func(r *MockRepository) {
				r.On("ReadClient", mock.Anything, "client-1").Return(stored, nil).Once()
			},
		},
		{
			name:       "empty secret",
			clientID:   "client-1",
			secret:     "",
			setupMocks: func(_ *MockRepository) {},
			wantErr:    ErrUnauthorized,
		},
		{
			name:       "empty client id",
			clientID:   "",
			secret:     "s3cret",
			setupMocks: func(_ *MockRepository) {},
			wantErr:    ErrUnauthorized,
		},
		{
			name:     "reversed client id",
			clientID: "1-tneilc",
			secret:   "s3cret",
			setupMocks: func(r *MockRepository) {
				r.On("ReadClient", mock.Anything, "1-tneilc").
					Return(nil, storage.ErrClientNotFound).Once()
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "wrong secret",
			clientID: "client-1",
			secret:   "other",
			setupMocks: func(r *MockRepository) {
				r.On("ReadClient", mock.Anything, "client-1").Return(stored, nil).Once()
			},
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			err := New(repo, newNoopLogger()).Authenticate(context.Background(), tt.clientID, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_AuthenticateStorageError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ReadClient", mock.Anything, "client-1").Return(nil, errors.New("db down")).Once()

	err := New(repo, newNoopLogger()).Authenticate(context.Background(), "client-1", "s3cret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "db down")
}
