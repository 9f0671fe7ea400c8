package infrastructure

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the game bot
const ServiceName = "lotobot"

// Checker reports whether a dependency is usable
type Checker func(ctx context.Context) error

// HealthServer serves the standard gRPC health protocol for orchestration probes.
// Status is recomputed from the registered checkers on every Refresh.
type HealthServer struct {
	addr     string
	server   *grpc.Server
	health   *health.Server
	mu       sync.Mutex
	checkers map[string]Checker
	listener net.Listener
}

// NewHealthServer creates a health server that will listen on addr
func NewHealthServer(addr string) *HealthServer {
	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{
		addr:     addr,
		server:   srv,
		health:   hs,
		checkers: make(map[string]Checker),
	}
}

// AddChecker registers a named dependency check
func (h *HealthServer) AddChecker(name string, check Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = check
}

// Refresh runs every checker and updates the serving status
func (h *HealthServer) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	h.mu.Lock()
	checkers := make(map[string]Checker, len(h.checkers))
	for name, check := range h.checkers {
		checkers[name] = check
	}
	h.mu.Unlock()

	status := healthpb.HealthCheckResponse_SERVING
	for name, check := range checkers {
		if err := check(ctx); err != nil {
			log.WithFields(log.Fields{
				"dependency": name,
				"error":      err,
			}).Warn("Health check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.health.SetServingStatus(ServiceName, status)
	h.health.SetServingStatus("", status)
	return status
}

// Start listens on the configured address and refreshes status every interval until ctx is done
func (h *HealthServer) Start(ctx context.Context, interval time.Duration) error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", h.addr, err)
	}
	h.listener = lis

	go func() {
		if err := h.server.Serve(lis); err != nil {
			log.WithError(err).Error("Health server stopped")
		}
	}()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		h.Refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Refresh(ctx)
			}
		}
	}()

	log.WithField("addr", lis.Addr().String()).Info("Health server listening")
	return nil
}

// Addr returns the bound address, or the configured one before Start
func (h *HealthServer) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.addr
}

// Stop marks the service as not serving and stops the gRPC server
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
