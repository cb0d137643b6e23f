package main

import (
	"context"
	"log"

	"github.com/shestoi/stockbook/internal/app"
	"github.com/shestoi/stockbook/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// Build собирает граф зависимостей: склад, service, HTTP/gRPC серверы, shutdown
	application, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	// Run блокируется до SIGINT/SIGTERM и graceful shutdown
	if err := application.Run(ctx); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}
