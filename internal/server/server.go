package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/handler"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/workers"
)

// ShutdownTimeout bounds the graceful shutdown started by a stop signal.
const ShutdownTimeout = 30 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	background workers.Worker

	logger *logger.Logger
}

// NewServer binds the configured listeners. background is started with the
// transports and stopped after them; it may be nil.
func NewServer(handlers *handler.Handlers, background workers.Worker, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{background: background, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.httpServer = httpSrv
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			servers.closeListeners()
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoTransports
	}

	return servers, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

// Shutdown stops the transports first so no new validation tasks are
// published, then drains the workers.
func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.gRPCServer != nil {
		if err := s.gRPCServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.background != nil {
		if err := s.background.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// run serves until ctx is done or a transport fails.
func (s *server) run(ctx context.Context) error {
	if s.background != nil {
		s.background.Run(ctx)
	}

	serveErrors := make(chan error, 2)
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		go func() { serveErrors <- s.httpServer.RunServer() }()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching gRPC server")
		go func() { serveErrors <- s.gRPCServer.RunServer() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-serveErrors:
		if runErr != nil {
			s.logger.Err(runErr).Msg("transport stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		s.logger.Err(err).Msg("server shutdown finished with errors")
		return errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) closeListeners() {
	if s.httpServer != nil {
		_ = s.httpServer.listener.Close()
	}
}
