package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall "".
const ServiceName = "storefront.Storefront"

// Probe reports whether a backing dependency answers.
type Probe func(ctx context.Context) error

// HealthHandler publishes grpc.health.v1 status driven by periodic probes.
type HealthHandler struct {
	server *health.Server
	probe  Probe
	log    *logrus.Logger
}

func NewHealthHandler(probe Probe, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		server: health.NewServer(),
		probe:  probe,
		log:    logger,
	}
}

// Register adds the health and reflection services to s.
func (h *HealthHandler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
	reflection.Register(s)
	h.log.Info("gRPC Handler: health and reflection services registered")
}

// Check runs the probe once and records the result.
func (h *HealthHandler) Check(ctx context.Context) bool {
	status := healthpb.HealthCheckResponse_SERVING
	if h.probe != nil {
		if err := h.probe(ctx); err != nil {
			h.log.Warnf("gRPC Handler: health probe failed: %v", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status == healthpb.HealthCheckResponse_SERVING
}

// Run probes every interval until ctx is done, then marks everything as
// not serving.
func (h *HealthHandler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		h.Check(probeCtx)
		cancel()

		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
		}
	}
}
