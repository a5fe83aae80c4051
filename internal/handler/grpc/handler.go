// Package grpc exposes the operational gRPC surface of the server: the
// standard health checking service and a request logging interceptor.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/utils"
)

// ServiceName is the health service name reported for the code generation
// API. The empty name reports the overall server status.
const ServiceName = "codegen.v1.CodeGen"

// Handler is the root gRPC transport handler.
//
// It owns the health server so the lifecycle can flip the serving status
// during shutdown.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose health status starts as SERVING.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(true)

	return h
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing switches every reported status between SERVING and
// NOT_SERVING.
func (h *Handler) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
}

// Shutdown marks all services NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLoggingInterceptor attaches a trace scoped logger to the call context
// and logs the method, status code and duration of every unary call.
func (h *Handler) UnaryLoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	callLogger := h.logger.WithTraceID(utils.NewTraceID())
	ctx = callLogger.WithContext(ctx)

	start := time.Now()
	resp, err := next(ctx, req)

	callLogger.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
