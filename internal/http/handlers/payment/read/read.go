// Package read обрабатывает получение платежа GET /pis/payment/{id}.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pis-contract/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pis-contract/internal/http/response"
	"github.com/magabrotheeeer/pis-contract/internal/lib/amount"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/models"
	"github.com/magabrotheeeer/pis-contract/internal/services/payment"
)

// Service читает платежи клиента.
type Service interface {
	Read(ctx context.Context, clientID, id string) (*models.Payment, error)
}

// PaymentResponse представление платежа. Сумма отдаётся строкой с двумя знаками после точки.
type PaymentResponse struct {
	ID                string                   `json:"id"`
	Amount            string                   `json:"amount" example:"0.01"`
	CurrencyCode      string                   `json:"currencyCode" example:"EUR"`
	Description       string                   `json:"description"`
	BankPaymentMethod models.BankPaymentMethod `json:"bankPaymentMethod"`
	BankStatus        string                   `json:"bankStatus" example:"STRD"`
	StatusGroup       string                   `json:"statusGroup" example:"started"`
	ConfirmLink       string                   `json:"confirmLink"`
	RedirectURL       string                   `json:"redirectUrl"`
	PSUDeviceID       string                   `json:"psuDeviceId,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// NewPaymentResponse собирает PaymentResponse из записи платежа.
func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		Amount:            amount.Format(p.Amount),
		CurrencyCode:      p.CurrencyCode,
		Description:       p.Description,
		BankPaymentMethod: p.BankPaymentMethod,
		BankStatus:        p.BankStatus,
		StatusGroup:       p.StatusGroup,
		ConfirmLink:       p.ConfirmLink,
		RedirectURL:       p.RedirectURL,
		PSUDeviceID:       p.PSUDeviceID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// Handler обработчик получения платежа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить платёж
// @Description Возвращает платёж клиента по идентификатору
// @Tags Payments
// @Produce  json
// @Param Client-Id header string true "Идентификатор клиента"
// @Param Client-Secret header string true "Секрет клиента"
// @Param id path string true "ID платежа"
// @Success 200 {object} PaymentResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /pis/payment/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.read"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		sl.Payment(id),
	)

	clientID, ok := middlewarectx.ClientIDFrom(r.Context())
	if !ok {
		log.Error("client id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.ErrNameUnauthorized, "missing client credentials"))
		return
	}

	p, err := h.service.Read(r.Context(), clientID, id)
	if errors.Is(err, payment.ErrPaymentNotFound) {
		log.Info("payment not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.ErrNamePaymentNotFound, "payment not found"))
		return
	}
	if err != nil {
		log.Error("failed to read payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.ErrNameInternal, "internal error"))
		return
	}

	render.JSON(w, r, NewPaymentResponse(p))
}
