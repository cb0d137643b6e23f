package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	httpapi "github.com/shestoi/stockbook/internal/api/http"
	"github.com/shestoi/stockbook/internal/config"
	kafkaevent "github.com/shestoi/stockbook/internal/event/kafka"
	"github.com/shestoi/stockbook/internal/metrics"
	"github.com/shestoi/stockbook/internal/repository/memory"
	"github.com/shestoi/stockbook/internal/service"
	platformhealthgrpc "github.com/shestoi/stockbook/platform/health/grpc"
	platformhealthhttp "github.com/shestoi/stockbook/platform/health/http"
	platformlogging "github.com/shestoi/stockbook/platform/logging"
	platformobservability "github.com/shestoi/stockbook/platform/observability"
	platformshutdown "github.com/shestoi/stockbook/platform/shutdown"
)

const serviceName = "stockbook"

// App содержит все зависимости для запуска и корректного shutdown stockbook
type App struct {
	logger       *zap.Logger
	httpServer   *http.Server
	httpListener net.Listener
	grpcServer   *grpc.Server
	grpcListener net.Listener
	readiness    *platformhealthhttp.Readiness
	health       *platformhealthgrpc.Health
	shutdownMgr  *platformshutdown.Manager
	wg           sync.WaitGroup
}

// Build создаёт и настраивает все зависимости stockbook
// Склад создаётся здесь и передаётся в service явно
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: serviceName,
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: logger: %w", op, err)
	}

	cfg.Log(logger)
	logger.Info("Building stockbook service", zap.String("op", op), zap.String("http_addr", cfg.HTTPAddr))

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	// OpenTelemetry: при OTEL_ENABLED=false ставятся noop providers
	otelShutdown, err := platformobservability.Init(ctx, cfg.OTel)
	if err != nil {
		return nil, fmt.Errorf("%s: observability: %w", op, err)
	}
	shutdownMgr.Add("otel", otelShutdown)

	var recorder service.MetricsRecorder
	if cfg.OTel.Enabled {
		r, err := metrics.NewRecorder(otel.Meter(serviceName))
		if err != nil {
			_ = shutdownMgr.Shutdown()
			return nil, fmt.Errorf("%s: metrics recorder: %w", op, err)
		}
		recorder = r
	}

	store := memory.NewStore()

	var publisher service.ProductEventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := kafkaevent.NewKafkaProductEventPublisher(logger, cfg.Kafka.Brokers, cfg.Kafka.ProductRegisteredTopic)
		shutdownMgr.Add("kafka_writer", platformshutdown.Close(kafkaPublisher))
		publisher = kafkaevent.NewBreakerPublisher(kafkaPublisher, kafkaevent.DefaultBreakerConfig(), logger)
		logger.Info("Kafka publisher enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.ProductRegisteredTopic),
		)
	} else {
		logger.Info("Kafka publisher disabled")
	}

	inventoryService := service.NewInventoryService(logger, store, publisher, recorder)

	promMetrics := metrics.New(store)
	readiness := &platformhealthhttp.Readiness{}

	handler := httpapi.NewHandler(inventoryService, logger)
	router := httpapi.NewRouter(handler, readiness.Ready, promMetrics, logger)

	a := &App{
		logger:      logger,
		readiness:   readiness,
		shutdownMgr: shutdownMgr,
	}

	// gRPC health (+ reflection) для оркестратора; отключается пустым GRPC_HEALTH_ADDR
	if cfg.GRPCHealthAddr != "" {
		grpcListener, err := net.Listen("tcp", cfg.GRPCHealthAddr)
		if err != nil {
			_ = shutdownMgr.Shutdown()
			return nil, fmt.Errorf("%s: grpc listen: %w", op, err)
		}

		grpcServer := grpc.NewServer(
			grpc.UnaryInterceptor(platformobservability.GRPCUnaryServerInterceptor(serviceName)),
		)
		health := platformhealthgrpc.New(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		health.Register(grpcServer)
		if cfg.EnableGRPCReflection {
			reflection.Register(grpcServer)
			logger.Info("gRPC reflection enabled")
		}

		shutdownMgr.Add("grpc_server", platformshutdown.ShutdownGRPCServer(grpcServer))

		a.grpcServer = grpcServer
		a.grpcListener = grpcListener
		a.health = health
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		if a.grpcListener != nil {
			_ = a.grpcListener.Close()
		}
		_ = shutdownMgr.Shutdown()
		return nil, fmt.Errorf("%s: http listen: %w", op, err)
	}

	a.httpListener = httpListener
	a.httpServer = &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(a.httpServer))
	// Первым шагом shutdown снимаем готовность
	shutdownMgr.Add("health_readiness", platformshutdown.SetHealthNotServing(readiness))
	if a.health != nil {
		shutdownMgr.Add("grpc_health_readiness", platformshutdown.SetHealthNotServing(a.health))
	}

	return a, nil
}

// HTTPAddr возвращает фактический адрес HTTP сервера
func (a *App) HTTPAddr() string {
	return a.httpListener.Addr().String()
}

// GRPCHealthAddr возвращает фактический адрес gRPC health сервера или пустую строку
func (a *App) GRPCHealthAddr() string {
	if a.grpcListener == nil {
		return ""
	}
	return a.grpcListener.Addr().String()
}

// Run запускает серверы и блокируется до сигнала shutdown или отмены ctx
func (a *App) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting stockbook service", zap.String("addr", a.HTTPAddr()))
	a.logger.Info("Health check available", zap.String("url", "http://"+a.HTTPAddr()+"/health"))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.Serve(a.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	if a.grpcServer != nil {
		a.logger.Info("Starting gRPC health server", zap.String("addr", a.GRPCHealthAddr()))
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.grpcServer.Serve(a.grpcListener); err != nil {
				a.logger.Error("gRPC server error", zap.Error(err))
			}
		}()
		a.health.SetServing("")
	}

	a.readiness.SetReady()
	a.logger.Info("Readiness status set to SERVING")

	// Ожидаем сигнал и выполняем shutdown
	err := a.shutdownMgr.Wait(ctx)

	a.wg.Wait()
	a.logger.Info("stockbook service stopped")
	return err
}
