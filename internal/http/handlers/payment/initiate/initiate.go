// Package initiate обрабатывает создание платежа POST /pis/payment.
//
// Порядок проверок: учётные данные клиента (middleware), заголовок Redirect-URL,
// разбор тела, сумма, остальные поля тела.
package initiate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pis-contract/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pis-contract/internal/http/response"
	"github.com/magabrotheeeer/pis-contract/internal/lib/amount"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/lib/validate"
	"github.com/magabrotheeeer/pis-contract/internal/models"
)

// Заголовки запроса инициации.
const (
	HeaderRedirectURL = "Redirect-URL"
	HeaderPSUDeviceID = "PSU-Device-ID"
)

// MaxBodyBytes предельный размер тела запроса.
const MaxBodyBytes = 64 << 10

// Service создаёт платежи.
type Service interface {
	Initiate(ctx context.Context, clientID string, in models.Initiation) (*models.Payment, error)
}

// Recorder учитывает отклонённые запросы.
type Recorder interface {
	IncValidationFailure(rule string)
}

// Response тело успешного ответа.
type Response struct {
	ID          string `json:"id" example:"6f1f0c52-1d4e-4c1a-9a6b-3c1c2c7b9e01"`
	BankStatus  string `json:"bankStatus" example:"STRD"`
	StatusGroup string `json:"statusGroup" example:"started"`
	ConfirmLink string `json:"confirmLink"`
}

// Handler обработчик инициации платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	recorder Recorder
	validate *validator.Validate
}

// New создаёт Handler. recorder может быть nil.
func New(log *slog.Logger, service Service, recorder Recorder) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		recorder: recorder,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Инициировать платёж
// @Description Создаёт платёж в статусе STRD и возвращает ссылку подтверждения
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param Client-Id header string true "Идентификатор клиента"
// @Param Client-Secret header string true "Секрет клиента"
// @Param Redirect-URL header string true "Адрес возврата плательщика"
// @Param PSU-Device-ID header string false "Идентификатор устройства плательщика"
// @Param request body models.PaymentRequest true "Данные платежа"
// @Success 200 {object} Response
// @Failure 400 {object} response.Response "Ошибка валидации тела"
// @Failure 400 {object} response.ErrorResponse "Некорректный Redirect-URL"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse
// @Router /pis/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.initiate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clientID, ok := middlewarectx.ClientIDFrom(r.Context())
	if !ok {
		log.Error("client id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.ErrNameUnauthorized, "missing client credentials"))
		return
	}
	log = log.With(sl.Client(clientID))

	redirectURL := r.Header.Get(HeaderRedirectURL)
	if !h.validRedirect(redirectURL) {
		log.Info("invalid redirect url", slog.String("redirect_url", redirectURL))
		h.reject("redirect")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.ErrNameInvalidRedirect,
			"Redirect-URL header must be an absolute http(s) URL"))
		return
	}

	var req models.PaymentRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		h.reject("body")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Invalid("invalid request body"))
		return
	}

	value, err := amount.Parse(req.Amount)
	if err != nil {
		log.Info("invalid amount", sl.Err(err))
		h.reject("amount")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Invalid(err.Error()))
		return
	}

	if err = h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			log.Error("validator failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.ErrNameInternal, "internal error"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		h.reject(errs[0].Tag())
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(errs))
		return
	}

	p, err := h.service.Initiate(r.Context(), clientID, models.Initiation{
		Amount:            value,
		CurrencyCode:      req.CurrencyCode,
		Description:       req.Description,
		BankPaymentMethod: req.BankPaymentMethod,
		RedirectURL:       redirectURL,
		PSUDeviceID:       r.Header.Get(HeaderPSUDeviceID),
	})
	if err != nil {
		log.Error("failed to initiate payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.ErrNameInternal, "internal error"))
		return
	}

	log.Info("payment created", sl.Payment(p.ID))
	render.JSON(w, r, Response{
		ID:          p.ID,
		BankStatus:  p.BankStatus,
		StatusGroup: p.StatusGroup,
		ConfirmLink: p.ConfirmLink,
	})
}

func (h *Handler) validRedirect(raw string) bool {
	if err := h.validate.Var(raw, "required,url"); err != nil {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *Handler) reject(rule string) {
	if h.recorder != nil {
		h.recorder.IncValidationFailure(rule)
	}
}
