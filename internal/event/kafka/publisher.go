package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shestoi/stockbook/internal/service"
)

// productRegisteredMessage JSON-представление события product.registered
type productRegisteredMessage struct {
	EventID      string `json:"event_id"`
	EventType    string `json:"event_type"`
	EventVersion int    `json:"event_version"`
	OccurredAt   string `json:"occurred_at"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
}

// KafkaProductEventPublisher реализует ProductEventPublisher используя Kafka
type KafkaProductEventPublisher struct {
	logger *zap.Logger
	writer *kafka.Writer
	topic  string
}

// NewKafkaProductEventPublisher создаёт новый Kafka publisher для событий о товарах
func NewKafkaProductEventPublisher(logger *zap.Logger, brokers []string, topic string) *KafkaProductEventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // один товар (по имени) всегда в одну партицию
		AllowAutoTopicCreation: true,
	}

	return &KafkaProductEventPublisher{
		logger: logger,
		writer: writer,
		topic:  topic,
	}
}

// Close закрывает Kafka writer
func (p *KafkaProductEventPublisher) Close() error {
	return p.writer.Close()
}

// PublishProductRegistered публикует событие регистрации товара в Kafka
func (p *KafkaProductEventPublisher) PublishProductRegistered(ctx context.Context, event service.ProductRegisteredEvent) error {
	valueBytes, err := EncodeProductRegistered(event)
	if err != nil {
		p.logger.Error("failed to marshal product registered event",
			zap.Error(err),
			zap.String("event_id", event.EventID),
		)
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.Name), //ключ - имя товара
		Value: valueBytes,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.logger.Error("failed to publish product registered event",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.String("event_id", event.EventID),
			zap.String("name", event.Name),
		)
		return err
	}

	p.logger.Info("product registered event published",
		zap.String("topic", p.topic),
		zap.String("event_id", event.EventID),
		zap.String("name", event.Name),
		zap.Int("quantity", event.Quantity),
	)

	return nil
}

// EncodeProductRegistered сериализует событие в JSON payload сообщения
func EncodeProductRegistered(event service.ProductRegisteredEvent) ([]byte, error) {
	return json.Marshal(productRegisteredMessage{
		EventID:      event.EventID,
		EventType:    event.EventType,
		EventVersion: event.EventVersion,
		OccurredAt:   event.OccurredAt.UTC().Format(time.RFC3339),
		Name:         event.Name,
		Category:     event.Category,
		Price:        event.Price,
		Quantity:     event.Quantity,
	})
}

// DecodeProductRegistered разбирает payload сообщения product.registered
func DecodeProductRegistered(value []byte) (service.ProductRegisteredEvent, error) {
	var msg productRegisteredMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return service.ProductRegisteredEvent{}, fmt.Errorf("unmarshal product registered event: %w", err)
	}

	if msg.EventID == "" {
		return service.ProductRegisteredEvent{}, fmt.Errorf("event_id is required")
	}
	if msg.EventType != service.EventTypeProductRegistered {
		return service.ProductRegisteredEvent{}, fmt.Errorf("unexpected event_type: %q", msg.EventType)
	}

	occurredAt, err := time.Parse(time.RFC3339, msg.OccurredAt)
	if err != nil {
		return service.ProductRegisteredEvent{}, fmt.Errorf("invalid occurred_at: %w", err)
	}

	return service.ProductRegisteredEvent{
		EventID:      msg.EventID,
		EventType:    msg.EventType,
		EventVersion: msg.EventVersion,
		OccurredAt:   occurredAt,
		Name:         msg.Name,
		Category:     msg.Category,
		Price:        msg.Price,
		Quantity:     msg.Quantity,
	}, nil
}
