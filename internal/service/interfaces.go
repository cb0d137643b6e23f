package service

import (
	"context"
	"time"
)

// ProductRegisteredEvent представляет событие регистрации товара (исходящее в Kafka)
type ProductRegisteredEvent struct {
	EventID      string
	EventType    string // "product.registered"
	EventVersion int
	OccurredAt   time.Time
	Name         string
	Category     string
	Price        string // десятичная строка, без потери точности
	Quantity     int
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProductEventPublisher --dir=. --output=./mocks --outpkg=mocks

// ProductEventPublisher определяет интерфейс для публикации событий о товарах
type ProductEventPublisher interface {
	// PublishProductRegistered публикует событие регистрации товара
	PublishProductRegistered(ctx context.Context, event ProductRegisteredEvent) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=MetricsRecorder --dir=. --output=./mocks --outpkg=mocks

// MetricsRecorder записывает бизнес-метрики регистрации
// При отключённом OTEL передаётся nil
type MetricsRecorder interface {
	RecordRegistered(ctx context.Context, quantity int)
	RecordRejected(ctx context.Context, reason string)
}
