package read

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pis-contract/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pis-contract/internal/models"
	"github.com/magabrotheeeer/pis-contract/internal/services/payment"
)

const paymentID = "6f1f0c52-1d4e-4c1a-9a6b-3c1c2c7b9e01"

type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, clientID, id string) (*models.Payment, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(clientID, id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/pis/payment/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if clientID != "" {
		ctx = context.WithValue(ctx, middlewarectx.ClientID, clientID)
	}
	return req.WithContext(ctx)
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	stored := &models.Payment{
		ID:           paymentID,
		ClientID:     "client-1",
		Amount:       decimal.New(1, -2),
		CurrencyCode: "EUR",
		BankPaymentMethod: models.BankPaymentMethod{
			CreditorName: "Padėk gatvės vaikams",
			EndToEndID:   "1234567890",
		},
		BankStatus:  models.BankStatusStarted,
		StatusGroup: models.StatusGroupStarted,
	}

	tests := []struct {
		name       string
		clientID   string
		setupMocks func(s *MockService)
		wantStatus int
		wantName   string
	}{
		{
			name:     "success",
			clientID: "client-1",
			setupMocks: func(s *MockService) {
				s.On("Read", mock.Anything, "client-1", paymentID).Return(stored, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "not found",
			clientID: "client-2",
			setupMocks: func(s *MockService) {
				s.On("Read", mock.Anything, "client-2", paymentID).Return(nil, payment.ErrPaymentNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantName:   "PaymentNotFound",
		},
		{
			name:     "service error",
			clientID: "client-1",
			setupMocks: func(s *MockService) {
				s.On("Read", mock.Anything, "client-1", paymentID).Return(nil, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantName:   "InternalError",
		},
		{
			name:       "no client",
			setupMocks: func(_ *MockService) {},
			wantStatus: http.StatusUnauthorized,
			wantName:   "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMocks(svc)
			rr := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(rr, newRequest(tt.clientID, paymentID))

			assert.Equal(t, tt.wantStatus, rr.Code)
			var got map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, paymentID, got["id"])
				assert.Equal(t, "0.01", got["amount"])
				bpm, ok := got["bankPaymentMethod"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "1234567890", bpm["endToEndId"])
			} else {
				errBody, ok := got["error"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantName, errBody["name"])
			}
			svc.AssertExpectations(t)
		})
	}
}
