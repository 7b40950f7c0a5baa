// Package grpc поднимает служебный gRPC сервер: health-check и reflection.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"gobooklend/internal/library/config"
	"gobooklend/pkg/logger"
)

// ServiceName - имя сервиса в health-check.
const ServiceName = "gobooklend.library"

// Константы для логирования.
const (
	LogServerStarting  = "Starting gRPC server"
	LogServerStarted   = "gRPC server started"
	LogServerStopping  = "Stopping gRPC server"
	LogServerStopped   = "gRPC server stopped"
	LogProbeFailed     = "readiness probe failed"
	LogStatusChanged   = "serving status changed"
	LogUnaryCall       = "gRPC call completed"
	ErrServerStart     = "failed to start gRPC server"
	ErrServerNotActive = "gRPC server is not listening"
)

// Probe проверяет готовность зависимостей.
type Probe func(ctx context.Context) error

// Server - gRPC сервер со статусом готовности.
type Server struct {
	cfg      *config.GRPCConfig
	server   *grpc.Server
	health   *health.Server
	probe    Probe
	listener net.Listener
	serving  bool
}

// New создает сервер. probe == nil означает постоянную готовность.
func New(cfg *config.GRPCConfig, probe Probe) *Server {
	s := &Server{
		cfg:    cfg,
		server: grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor)),
		health: health.NewServer(),
		probe:  probe,
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	return s
}

// Start начинает прием соединений.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}
	s.listener = listener

	s.Check(ctx)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает фактический адрес прослушивания.
func (s *Server) Addr() (string, error) {
	if s.listener == nil {
		return "", errors.New(ErrServerNotActive)
	}
	return s.listener.Addr().String(), nil
}

// Check выполняет probe и обновляет статус готовности.
func (s *Server) Check(ctx context.Context) {
	serving := true
	if s.probe != nil {
		if err := s.probe(ctx); err != nil {
			logger.Log(ctx).Warn(ctx, LogProbeFailed, zap.Error(err))
			serving = false
		}
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !serving {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	if serving != s.serving {
		logger.Log(ctx).Info(ctx, LogStatusChanged, zap.String("status", status.String()))
		s.serving = serving
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Watch периодически повторяет Check до отмены ctx.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Stop переводит сервис в NOT_SERVING и дожидается завершения вызовов.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)

	log.Info(ctx, LogServerStopping)
	s.health.Shutdown()
	s.server.GracefulStop()
	log.Info(ctx, LogServerStopped)
}

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx = logger.NewRequestIDContext(ctx, "")
	start := time.Now()

	resp, err := handler(ctx, req)

	logger.Log(ctx).Debug(ctx, LogUnaryCall,
		zap.String("method", info.FullMethod),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err))
	return resp, err
}
