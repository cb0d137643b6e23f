package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shestoi/stockbook/internal/repository"
	"github.com/shestoi/stockbook/internal/transfer"
	platformobservability "github.com/shestoi/stockbook/platform/observability"
)

const (
	// EventTypeProductRegistered тип события регистрации товара
	EventTypeProductRegistered = "product.registered"
	productRegisteredVersion   = 1
)

// InventoryService содержит бизнес-логику работы со складом
// Зависит от интерфейса InventoryRepository, а не от конкретной реализации
type InventoryService struct {
	logger    *zap.Logger
	repo      repository.InventoryRepository
	publisher ProductEventPublisher
	metrics   MetricsRecorder
	validate  *validator.Validate
	now       func() time.Time
}

// NewInventoryService создаёт новый экземпляр InventoryService
// publisher и metrics могут быть nil: тогда события и метрики не отправляются
func NewInventoryService(
	logger *zap.Logger,
	repo repository.InventoryRepository,
	publisher ProductEventPublisher,
	metrics MetricsRecorder,
) *InventoryService {
	return &InventoryService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		validate:  newValidator(),
		now:       time.Now,
	}
}

// RegisterProductOutput содержит зарегистрированный товар и токен для экрана деталей
type RegisterProductOutput struct {
	Product repository.Product
	Ref     string
}

// RegisterProduct проверяет ввод и добавляет товар на склад
// При ошибке валидации склад не меняется
func (s *InventoryService) RegisterProduct(ctx context.Context, input RegisterProductInput) (*RegisterProductOutput, error) {
	log := platformobservability.Logger(ctx, s.logger)

	price, quantity, reason, err := s.validateInput(input)
	if err != nil {
		log.Info("product rejected",
			zap.String("reason", reason),
			zap.String("name", input.Name),
		)
		if s.metrics != nil {
			s.metrics.RecordRejected(ctx, reason)
		}
		return nil, fmt.Errorf("register product: %w", err)
	}

	product := repository.NewProduct(input.Name, input.Category, price, quantity)
	s.repo.Add(product)

	log.Info("product registered",
		zap.String("name", product.Name),
		zap.String("category", product.Category),
		zap.String("price", product.Price.String()),
		zap.Int("quantity", product.Quantity),
	)

	if s.metrics != nil {
		s.metrics.RecordRegistered(ctx, product.Quantity)
	}

	// Событие публикуется после записи в склад; ошибка публикации не отменяет регистрацию
	if s.publisher != nil {
		event := ProductRegisteredEvent{
			EventID:      uuid.New().String(),
			EventType:    EventTypeProductRegistered,
			EventVersion: productRegisteredVersion,
			OccurredAt:   s.now().UTC(),
			Name:         product.Name,
			Category:     product.Category,
			Price:        product.Price.String(),
			Quantity:     product.Quantity,
		}
		if err := s.publisher.PublishProductRegistered(ctx, event); err != nil {
			log.Warn("failed to publish product registered event",
				zap.Error(err),
				zap.String("event_id", event.EventID),
			)
		}
	}

	return &RegisterProductOutput{
		Product: product,
		Ref:     transfer.Encode(product),
	}, nil
}

// ListedProduct товар в списке вместе с токеном для экрана деталей
type ListedProduct struct {
	Product repository.Product
	Ref     string
}

// ListProductsOutput содержит все товары в порядке регистрации
type ListProductsOutput struct {
	Products []ListedProduct
	// StatisticsAvailable true только для непустого склада
	StatisticsAvailable bool
}

// ListProducts возвращает полный список товаров
func (s *InventoryService) ListProducts(ctx context.Context) *ListProductsOutput {
	products := s.repo.List()

	listed := make([]ListedProduct, 0, len(products))
	for _, p := range products {
		listed = append(listed, ListedProduct{
			Product: p,
			Ref:     transfer.Encode(p),
		})
	}

	platformobservability.Logger(ctx, s.logger).Debug("products listed", zap.Int("count", len(listed)))

	return &ListProductsOutput{
		Products:            listed,
		StatisticsAvailable: len(listed) > 0,
	}
}

// StatisticsOutput агрегаты склада на момент запроса
type StatisticsOutput struct {
	TotalValue    decimal.Decimal
	TotalQuantity int
}

// Statistics пересчитывает агрегаты из хранилища при каждом вызове
func (s *InventoryService) Statistics(ctx context.Context) StatisticsOutput {
	out := StatisticsOutput{
		TotalValue:    s.repo.TotalValue(),
		TotalQuantity: s.repo.TotalQuantity(),
	}

	platformobservability.Logger(ctx, s.logger).Debug("statistics computed",
		zap.String("total_value", out.TotalValue.String()),
		zap.Int("total_quantity", out.TotalQuantity),
	)

	return out
}

// ProductDetails восстанавливает товар, переданный по значению через токен
// Хранилище не читается и не меняется
func (s *InventoryService) ProductDetails(ctx context.Context, ref string) (repository.Product, error) {
	product, err := transfer.Decode(ref)
	if err != nil {
		platformobservability.Logger(ctx, s.logger).Info("invalid product ref", zap.Error(err))
		return repository.Product{}, fmt.Errorf("product details: %w", err)
	}
	return product, nil
}
