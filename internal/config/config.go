package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"

	platformkafka "github.com/shestoi/stockbook/platform/kafka"
	platformobservability "github.com/shestoi/stockbook/platform/observability"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию stockbook
type Config struct {
	AppEnv   Env    `env:"APP_ENV" envDefault:"local"`
	HTTPAddr string `env:"HTTP_ADDR"`
	// GRPCHealthAddr адрес gRPC health сервера; пустое значение в окружении отключает его
	GRPCHealthAddr       string        `env:"GRPC_HEALTH_ADDR"`
	EnableGRPCReflection bool          `env:"ENABLE_GRPC_REFLECTION" envDefault:"false"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"`

	Kafka platformkafka.Config
	OTel  platformobservability.Config
}

// Load загружает конфигурацию из переменных окружения
// Читает APP_ENV и устанавливает дефолты адресов в зависимости от окружения
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AppEnv != EnvLocal && cfg.AppEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", cfg.AppEnv)
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = byEnv(cfg.AppEnv, "127.0.0.1:8080", "0.0.0.0:8080")
	}
	if _, set := os.LookupEnv("GRPC_HEALTH_ADDR"); !set {
		cfg.GRPCHealthAddr = byEnv(cfg.AppEnv, "127.0.0.1:50061", "0.0.0.0:50061")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{byEnv(cfg.AppEnv, "localhost:19092", "kafka:9092")}
	}
	if cfg.OTel.OTLPEndpoint == "" {
		cfg.OTel.OTLPEndpoint = byEnv(cfg.AppEnv, "127.0.0.1:4317", "otel-collector:4317")
	}
	cfg.OTel.ServiceName = "stockbook"
	cfg.OTel.DeploymentEnvironment = string(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.OTel.SamplingRatio < 0 || c.OTel.SamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be within [0, 1], got %v", c.OTel.SamplingRatio)
	}
	if c.OTel.Enabled && c.OTel.OTLPEndpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when OTEL_ENABLED=true")
	}
	if err := c.Kafka.Validate(); err != nil {
		return err
	}
	return nil
}

// Log выводит эффективную конфигурацию в лог
func (c Config) Log(logger *zap.Logger) {
	logger.Info("Config loaded",
		zap.String("app_env", string(c.AppEnv)),
		zap.String("http_addr", c.HTTPAddr),
		zap.String("grpc_health_addr", c.GRPCHealthAddr),
		zap.Bool("grpc_reflection", c.EnableGRPCReflection),
		zap.Duration("shutdown_timeout", c.ShutdownTimeout),
		zap.Bool("kafka_enabled", c.Kafka.Enabled),
		zap.Strings("kafka_brokers", c.Kafka.Brokers),
		zap.String("kafka_product_registered_topic", c.Kafka.ProductRegisteredTopic),
		zap.Bool("otel_enabled", c.OTel.Enabled),
		zap.String("otel_endpoint", c.OTel.OTLPEndpoint),
		zap.Float64("otel_sampling_ratio", c.OTel.SamplingRatio),
	)
}

func byEnv(appEnv Env, local, docker string) string {
	if appEnv == EnvDocker {
		return docker
	}
	return local
}
