package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Health представляет обёртку над стандартным gRPC health service.
// Позволяет управлять статусом readiness/liveness для сервиса.
type Health struct {
	srv *health.Server
}

// New создаёт новый экземпляр Health с указанным начальным статусом.
// Для readiness используется NOT_SERVING, пока сервис не собран полностью.
func New(initialStatus grpc_health_v1.HealthCheckResponse_ServingStatus) *Health {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", initialStatus)
	return &Health{srv: healthServer}
}

// Register регистрирует health service на gRPC сервере.
// Должно вызываться до запуска сервера (grpcSrv.Serve).
func (h *Health) Register(grpcSrv *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(grpcSrv, h.srv)
}

// SetServing устанавливает статус SERVING для указанного сервиса.
// Пустая строка означает весь сервер.
func (h *Health) SetServing(serviceName string) {
	h.srv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

// SetNotServing устанавливает статус NOT_SERVING для указанного сервиса.
// Вызывается первым шагом graceful shutdown.
func (h *Health) SetNotServing(serviceName string) {
	h.srv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}
