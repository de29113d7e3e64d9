// Package health поднимает gRPC-сервис grpc.health.v1.Health.
//
// Статус обновляется по результату проверки хранилища: SERVING, пока база
// отвечает на ping, иначе NOT_SERVING.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
)

// ServiceName имя сервиса в ответах Health/Check.
const ServiceName = "pis.PaymentInitiation"

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server gRPC-сервер проверки здоровья.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	db         Pinger
	interval   time.Duration
	log        *slog.Logger
}

// New открывает listener на addr и регистрирует сервис здоровья.
func New(addr string, db Pinger, interval time.Duration, log *slog.Logger) (*Server, error) {
	const op = "grpc.health.New"
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	return &Server{
		grpcServer: grpcServer,
		health:     hs,
		listener:   lis,
		db:         db,
		interval:   interval,
		log:        log,
	}, nil
}

// Addr адрес, на котором слушает сервер.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run обслуживает запросы до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.refresh(ctx)
	go func() {
		s.log.Info("gRPC health service listening on", slog.String("address", s.Addr()))
		errCh <- s.grpcServer.Serve(s.listener)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			s.grpcServer.GracefulStop()
			return nil
		case err := <-errCh:
			return err
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Server) refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.Ping(ctx); err != nil {
		s.log.Warn("storage ping failed", sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
