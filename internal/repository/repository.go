package repository

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MaxPriceIntegerDigits цифр в целой части цены
	MaxPriceIntegerDigits = 30
	// MaxPriceFractionDigits знаков после запятой в цене
	MaxPriceFractionDigits = 30
	// maxPriceTextLen длина текста цены, после которой разбор не выполняется
	maxPriceTextLen = 80

	// MaxQuantity верхняя граница количества одной позиции (32-битный int)
	MaxQuantity = math.MaxInt32
)

var (
	// ErrPriceNotNumber текст цены не является десятичным числом
	ErrPriceNotNumber = errors.New("price is not a number")
	// ErrPriceOutOfRange цена выходит за MaxPriceIntegerDigits/MaxPriceFractionDigits
	ErrPriceOutOfRange = errors.New("price is out of range")
)

// ParsePrice разбирает десятичную цену, не раскрывая экспоненту
// Значения вида 1e20000000 возвращают ErrPriceOutOfRange; ноль нормализуется
func ParsePrice(s string) (decimal.Decimal, error) {
	if len(s) > maxPriceTextLen {
		return decimal.Zero, ErrPriceOutOfRange
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceNotNumber, err)
	}
	if price.IsZero() {
		return decimal.Zero, nil
	}
	if !PriceWithinBounds(price) {
		return decimal.Zero, ErrPriceOutOfRange
	}
	return price, nil
}

// PriceWithinBounds проверяет число цифр целой и дробной части по коэффициенту и экспоненте
func PriceWithinBounds(price decimal.Decimal) bool {
	exp := int64(price.Exponent())
	if exp < -MaxPriceFractionDigits {
		return false
	}
	return int64(price.NumDigits())+exp <= MaxPriceIntegerDigits
}

// Product представляет доменную модель товара на складе
// Значение неизменяемо после создания: хранилище только добавляет записи целиком
type Product struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int
}

// NewProduct создаёт товар из уже проверенных значений
// Валидацию выполняет вызывающая сторона (service слой), здесь её нет
func NewProduct(name, category string, price decimal.Decimal, quantity int) Product {
	return Product{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}
}

// Value возвращает стоимость позиции: price * quantity
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// InventoryRepository определяет интерфейс хранилища товаров
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type InventoryRepository interface {
	// Add добавляет товар в конец последовательности
	// Не валидирует запись и никогда не возвращает ошибку
	Add(product Product)

	// List возвращает все товары в порядке регистрации
	List() []Product

	// Len возвращает количество товаров
	Len() int

	// TotalValue возвращает сумму price * quantity по всем товарам (0 для пустого склада)
	TotalValue() decimal.Decimal

	// TotalQuantity возвращает сумму quantity по всем товарам (0 для пустого склада)
	TotalQuantity() int
}
