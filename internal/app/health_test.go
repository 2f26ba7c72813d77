package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"service-courier-tracking/internal/logx"
)

func TestHealthServer_DisabledWithoutAddr(t *testing.T) {
	t.Parallel()

	require.Nil(t, newHealthServer(testConfig()))
}

func TestHealthServer_ReportsServing(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GRPCHealthAddr = "127.0.0.1:0"
	h := newHealthServer(cfg)
	require.NotNil(t, h)
	require.NoError(t, h.start(logx.Nop()))
	t.Cleanup(h.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctx, h.lis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
