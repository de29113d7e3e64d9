// Package pis собирает HTTP-сервис платёжной инициации из хранилища, сервисов и обработчиков.
package pis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/pis-contract/internal/cache"
	"github.com/magabrotheeeer/pis-contract/internal/config"
	grpchealth "github.com/magabrotheeeer/pis-contract/internal/grpc/health"
	"github.com/magabrotheeeer/pis-contract/internal/lib/jwt"
	"github.com/magabrotheeeer/pis-contract/internal/lib/metrics"
	"github.com/magabrotheeeer/pis-contract/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/migrations"
	clientservice "github.com/magabrotheeeer/pis-contract/internal/services/client"
	paymentservice "github.com/magabrotheeeer/pis-contract/internal/services/payment"
	"github.com/magabrotheeeer/pis-contract/internal/storage"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
)

// App сервис платёжной инициации.
type App struct {
	server *http.Server
	health *grpchealth.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// New подключает зависимости, применяет миграции и регистрирует клиентов из конфига.
// Redis, RabbitMQ и gRPC health подключаются, только если заданы их адреса.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.pis.New"

	db, err := storage.New(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := &App{
		logger: logger,
		db:     db,
	}
	if err = a.init(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (a *App) init(ctx context.Context, cfg *config.Config) error {
	if err := migrations.Run(a.db.DB, cfg.Driver); err != nil {
		return err
	}

	clients := clientservice.New(a.db, a.logger)
	for _, c := range cfg.Clients {
		if err := clients.Register(ctx, c.ClientID, c.ClientSecret, c.Name); err != nil {
			return err
		}
		a.logger.Info("client registered", sl.Client(c.ClientID))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	opts := []paymentservice.Option{paymentservice.WithRecorder(m)}

	if cfg.AddressRedis != "" {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return err
		}
		a.cache = c
		opts = append(opts, paymentservice.WithCache(c, cfg.CacheTTL))
	}

	if cfg.URLRabbit != "" {
		conn, err := rabbitmq.Connect(cfg.URLRabbit, cfg.Retries, cfg.RetriesDelay)
		if err != nil {
			return err
		}
		a.amqp = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.PaymentQueues())
		if err != nil {
			return err
		}
		opts = append(opts, paymentservice.WithPublisher(rabbitmq.NewEventPublisher(ch, cfg.Exchange)))
	}

	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	payments := paymentservice.New(a.db, tokens, cfg.PublicURL, a.logger, opts...)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   a.logger,
		Clients:  clients,
		Payments: payments,
		Storage:  a.db,
		Metrics:  m,
		Registry: registry,
		Limiter:  newLimiter(cfg.RateLimit),
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.AddressGRPC != "" {
		hs, err := grpchealth.New(cfg.AddressGRPC, a.db, healthCheckInterval, a.logger)
		if err != nil {
			return err
		}
		a.health = hs
	}
	return nil
}

// Handler возвращает корневой HTTP-обработчик.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run обслуживает запросы до отмены ctx, затем останавливает серверы и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error("failed to close resources", sl.Err(err))
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	})
	if a.health != nil {
		g.Go(func() error {
			return a.health.Run(ctx)
		})
	}
	return g.Wait()
}

// Close закрывает соединения с внешними системами.
func (a *App) Close() error {
	var errs []error
	if a.amqp != nil {
		errs = append(errs, a.amqp.Close())
		a.amqp = nil
	}
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
		a.cache = nil
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	return errors.Join(errs...)
}
