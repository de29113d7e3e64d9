package pis

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация OpenAPI-документа для /docs.
	_ "github.com/magabrotheeeer/pis-contract/docs"
	"github.com/magabrotheeeer/pis-contract/internal/config"
	"github.com/magabrotheeeer/pis-contract/internal/http/handlers/health"
	"github.com/magabrotheeeer/pis-contract/internal/http/handlers/payment/confirm"
	"github.com/magabrotheeeer/pis-contract/internal/http/handlers/payment/initiate"
	"github.com/magabrotheeeer/pis-contract/internal/http/handlers/payment/read"
	"github.com/magabrotheeeer/pis-contract/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pis-contract/internal/lib/metrics"
)

// PaymentService операции над платежами, нужные обработчикам.
type PaymentService interface {
	initiate.Service
	read.Service
	confirm.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Logger   *slog.Logger
	Clients  middlewarectx.Authenticator
	Payments PaymentService
	Storage  health.Pinger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Limiter  *middlewarectx.RateLimiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		d.Metrics.Middleware,
	)

	r.Route("/pis/payment", func(r chi.Router) {
		// Ссылка подтверждения открывается плательщиком без учётных данных клиента.
		r.Get("/{id}/confirm", confirm.New(d.Logger, d.Payments).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.ClientAuth(d.Clients, d.Logger))
			if d.Limiter != nil {
				r.Use(d.Limiter.Middleware(d.Logger))
			}
			r.Post("/", initiate.New(d.Logger, d.Payments, d.Metrics).ServeHTTP)
			r.Get("/{id}", read.New(d.Logger, d.Payments).ServeHTTP)
		})
	})

	r.Get("/health", health.New(d.Logger, d.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func newLimiter(cfg config.RateLimit) *middlewarectx.RateLimiter {
	if cfg.RPS <= 0 {
		return nil
	}
	return middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst)
}
