package app

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/shestoi/stockbook/internal/config"
	platformkafka "github.com/shestoi/stockbook/platform/kafka"
	platformobservability "github.com/shestoi/stockbook/platform/observability"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:          config.EnvDocker,
		HTTPAddr:        "127.0.0.1:0",
		GRPCHealthAddr:  "127.0.0.1:0",
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "error",
		Kafka:           platformkafka.Config{Enabled: false},
		OTel:            platformobservability.Config{Enabled: false, ServiceName: "stockbook"},
	}
}

func TestApp_BuildRunShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := Build(ctx, testConfig())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	baseURL := "http://" + a.HTTPAddr()

	// ждём, пока readiness станет true
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(baseURL+"/products", "application/json",
		strings.NewReader(`{"name":"Widget","category":"Hardware","price":"10.0","quantity":"5"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(baseURL + "/statistics")
	require.NoError(t, err)
	var stats struct {
		TotalValue    string `json:"total_value"`
		TotalQuantity int    `json:"total_quantity"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	require.Equal(t, "50", stats.TotalValue)
	require.Equal(t, 5, stats.TotalQuantity)

	conn, err := grpc.NewClient(a.GRPCHealthAddr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	checkResp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, checkResp.GetStatus())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestApp_BuildWithoutGRPCHealth(t *testing.T) {
	cfg := testConfig()
	cfg.GRPCHealthAddr = ""

	a, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	require.Empty(t, a.GRPCHealthAddr())
	require.NoError(t, a.shutdownMgr.Shutdown())
	_ = a.httpListener.Close()
}

func TestApp_BuildInvalidLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "loud"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}
