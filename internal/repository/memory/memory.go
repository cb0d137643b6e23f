package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/shestoi/stockbook/internal/repository"
)

// Store реализует InventoryRepository используя in-memory слайс
// Создаётся явно в app.Build и передаётся зависимостям, глобального состояния нет
// Содержимое живёт до завершения процесса
type Store struct {
	mu       sync.RWMutex
	products []repository.Product
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		products: make([]repository.Product, 0),
	}
}

// Add добавляет товар в конец списка
// Защищён мьютексом: HTTP сервер обрабатывает запросы в разных горутинах
func (s *Store) Add(product repository.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, product)
}

// List возвращает снимок текущего списка товаров
// Каждый новый вызов видит все добавленные к этому моменту товары
func (s *Store) List() []repository.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repository.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len возвращает количество товаров
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

// TotalValue пересчитывает сумму price * quantity при каждом вызове
// Агрегаты не кешируются
func (s *Store) TotalValue() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, p := range s.products {
		total = total.Add(p.Value())
	}
	return total
}

// TotalQuantity пересчитывает сумму quantity при каждом вызове
func (s *Store) TotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range s.products {
		total += p.Quantity
	}
	return total
}

var _ repository.InventoryRepository = (*Store)(nil)
