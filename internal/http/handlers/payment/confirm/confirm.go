// Package confirm обрабатывает переход плательщика по ссылке подтверждения.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pis-contract/internal/http/response"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/models"
	"github.com/magabrotheeeer/pis-contract/internal/services/payment"
)

// Service подтверждает платежи.
type Service interface {
	Confirm(ctx context.Context, id, token string) (*models.Payment, error)
}

// Handler обработчик подтверждения.
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
// @Summary Подтвердить платёж
// @Description Проверяет токен ссылки подтверждения, переводит платёж в ACTC и перенаправляет плательщика на Redirect-URL
// @Tags Payments
// @Param id path string true "ID платежа"
// @Param token query string true "Токен подтверждения"
// @Success 302
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /pis/payment/{id}/confirm [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.confirm"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		sl.Payment(id),
	)

	p, err := h.service.Confirm(r.Context(), id, r.URL.Query().Get("token"))
	switch {
	case errors.Is(err, payment.ErrInvalidConfirmToken):
		log.Info("invalid confirm token")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.ErrNameInvalidConfirmToken, "confirm token is invalid or expired"))
		return
	case errors.Is(err, payment.ErrPaymentNotFound):
		log.Info("payment not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.ErrNamePaymentNotFound, "payment not found"))
		return
	case err != nil:
		log.Error("failed to confirm payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.ErrNameInternal, "internal error"))
		return
	}

	target, err := payment.RedirectTarget(p)
	if err != nil {
		log.Error("stored redirect url is broken", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.ErrNameInternal, "internal error"))
		return
	}
	log.Info("payment confirmed, redirecting")
	http.Redirect(w, r, target, http.StatusFound)
}
