// Package main содержит events-tail: консольный consumer топика product.registered.
//
// Читает события регистрации товаров, которые публикует stockbook при KAFKA_ENABLED=true,
// и пишет их в лог. Используется для локальной проверки публикации.
//
// Переменные окружения:
//   - KAFKA_BROKERS (по умолчанию localhost:19092)
//   - KAFKA_PRODUCT_REGISTERED_TOPIC (по умолчанию product.registered)
//   - KAFKA_GROUP_ID (по умолчанию stockbook-events-tail)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkaevent "github.com/shestoi/stockbook/internal/event/kafka"
	platformkafka "github.com/shestoi/stockbook/platform/kafka"
	platformlogging "github.com/shestoi/stockbook/platform/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "events-tail: %v\n", err)
		os.Exit(1)
	}
}

// run содержит всю работу main; defer-ы отрабатывают и на путях с ошибкой
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "events-tail",
		Env:         "local",
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer platformlogging.Sync(logger)

	cfg := platformkafka.DefaultConfig()
	if err := platformkafka.LoadEnv(&cfg); err != nil {
		logger.Error("failed to load kafka config", zap.Error(err))
		return fmt.Errorf("load kafka config: %w", err)
	}

	logger.Info("kafka config loaded",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.ProductRegisteredTopic),
		zap.String("group_id", cfg.GroupID),
	)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.ProductRegisteredTopic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	if err := tail(ctx, reader, logger); err != nil {
		logger.Error("events tail stopped with error", zap.Error(err))
		return err
	}
	logger.Info("events tail stopped")
	return nil
}

// tail читает сообщения до отмены ctx; ReadMessage коммитит offset сам (consumer group)
func tail(ctx context.Context, reader *kafka.Reader, logger *zap.Logger) error {
	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		event, err := kafkaevent.DecodeProductRegistered(m.Value)
		if err != nil {
			// poison pill: логируем и идём дальше
			logger.Warn("skipping malformed message",
				zap.Error(err),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
			continue
		}

		logger.Info("product registered",
			zap.String("event_id", event.EventID),
			zap.Time("occurred_at", event.OccurredAt),
			zap.String("name", event.Name),
			zap.String("category", event.Category),
			zap.String("price", event.Price),
			zap.Int("quantity", event.Quantity),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
	}
}
