package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/handler"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/service"
)

// journalWorker records lifecycle calls in the order they happen.
type journalWorker struct {
	mu      sync.Mutex
	journal []string
}

func (w *journalWorker) Run(ctx context.Context) {
	w.record("run")
}

func (w *journalWorker) Shutdown(ctx context.Context) error {
	w.record("shutdown")
	return nil
}

func (w *journalWorker) record(event string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.journal = append(w.journal, event)
}

func (w *journalWorker) events() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.journal...)
}

func testConfig(httpAddr, grpcAddr string) config.StructuredConfig {
	return config.StructuredConfig{
		App:    config.App{TokenDuration: time.Minute},
		Server: config.Server{HTTPAddress: httpAddr, GRPCAddress: grpcAddr},
	}
}

func newTestServer(t *testing.T, cfg config.StructuredConfig, background *journalWorker) *server {
	t.Helper()

	handlers, err := handler.NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, background, cfg.Server, logger.Nop())
	require.NoError(t, err)

	return srv.(*server)
}

func TestNewServer_NoTransports(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoTransports)
}

func TestNewServer_AddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	cfg := testConfig(taken.Addr().String(), "")
	handlers, err := handler.NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)

	_, err = NewServer(handlers, nil, cfg.Server, logger.Nop())
	assert.Error(t, err)
}

func TestServer_RunServesAndShutsDownInOrder(t *testing.T) {
	background := &journalWorker{}
	srv := newTestServer(t, testConfig("127.0.0.1:0", "127.0.0.1:0"), background)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.run(ctx) }()

	httpURL := "http://" + srv.httpServer.listener.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(httpURL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "ok"
	}, 5*time.Second, 20*time.Millisecond)

	conn, err := grpc.NewClient(srv.gRPCServer.gRPCNetListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, []string{"run", "shutdown"}, background.events())

	_, err = http.Get(httpURL)
	assert.Error(t, err, "listener must be closed after shutdown")
}
