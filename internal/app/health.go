package app

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/logx"
)

// healthServer exposes grpc.health.v1 for orchestration probes.
type healthServer struct {
	addr   string
	srv    *grpc.Server
	status *health.Server
	lis    net.Listener
}

// newHealthServer returns nil when no address is configured.
func newHealthServer(cfg *config.Config) *healthServer {
	if cfg.GRPCHealthAddr == "" {
		return nil
	}
	srv := grpc.NewServer()
	status := health.NewServer()
	healthpb.RegisterHealthServer(srv, status)
	return &healthServer{addr: cfg.GRPCHealthAddr, srv: srv, status: status}
}

func (h *healthServer) start(logger logx.Logger) error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("grpc health listen %s: %w", h.addr, err)
	}
	h.lis = lis
	h.status.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		logger.Info("grpc health listening", logx.Event("grpc_health_started"), logx.String("addr", lis.Addr().String()))
		if err := h.srv.Serve(lis); err != nil {
			logger.Error("grpc health serve error", logx.Event("grpc_health_failed"), logx.Err(err))
		}
	}()
	return nil
}

func (h *healthServer) stop() {
	h.status.Shutdown()
	h.srv.GracefulStop()
}
