package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestHealth_StatusTransitions(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)

	h := New(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	srv := grpc.NewServer()
	h.Register(srv)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := grpc_health_v1.NewHealthClient(conn)
	ctx := context.Background()

	check := func() grpc_health_v1.HealthCheckResponse_ServingStatus {
		resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
		require.NoError(t, err)
		return resp.GetStatus()
	}

	require.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check())

	h.SetServing("")
	require.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check())

	h.SetNotServing("")
	require.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check())
}
