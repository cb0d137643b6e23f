package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/shestoi/stockbook/internal/service"
)

// ErrPublisherUnavailable возвращается, пока circuit breaker открыт
var ErrPublisherUnavailable = errors.New("product event publisher unavailable")

// BreakerConfig настройки circuit breaker для публикации
type BreakerConfig struct {
	Name string
	// FailureThreshold подряд идущих ошибок до размыкания
	FailureThreshold uint32
	// OpenTimeout сколько breaker остаётся открытым до half-open
	OpenTimeout time.Duration
	// HalfOpenRequests пробных запросов в half-open
	HalfOpenRequests uint32
}

// DefaultBreakerConfig возвращает настройки по умолчанию
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "kafka-product-registered",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 1,
	}
}

// BreakerPublisher оборачивает ProductEventPublisher в circuit breaker:
// при недоступной Kafka регистрация не ждёт таймаут writer на каждом запросе
type BreakerPublisher struct {
	next   service.ProductEventPublisher
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewBreakerPublisher создаёт publisher с circuit breaker
func NewBreakerPublisher(next service.ProductEventPublisher, cfg BreakerConfig, logger *zap.Logger) *BreakerPublisher {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &BreakerPublisher{
		next:   next,
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

// PublishProductRegistered публикует событие через circuit breaker
func (p *BreakerPublisher) PublishProductRegistered(ctx context.Context, event service.ProductRegisteredEvent) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.PublishProductRegistered(ctx, event)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrPublisherUnavailable, err)
	}
	return err
}

// State текущее состояние breaker
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
