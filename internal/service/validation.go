package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/shestoi/stockbook/internal/repository"
)

var (
	// ErrMissingFields возвращается, когда хотя бы одно поле пустое или состоит из пробелов
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidQuantity возвращается, когда количество меньше 1
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrNegativePrice возвращается, когда цена отрицательная
	ErrNegativePrice = errors.New("price cannot be negative")
)

// Причины отказа для метрик
const (
	reasonMissingFields   = "missing_fields"
	reasonInvalidQuantity = "invalid_quantity"
	reasonNegativePrice   = "negative_price"
)

// RegisterProductInput содержит сырые значения полей формы регистрации
// Цена и количество приходят текстом, как из полей ввода
type RegisterProductInput struct {
	Name     string `validate:"notblank"`
	Category string `validate:"notblank"`
	Price    string `validate:"notblank"`
	Quantity string `validate:"notblank"`
}

// newValidator создаёт validator с правилом notblank
// Ошибка регистрации правила паникует при сборке сервиса
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(fmt.Sprintf("service: register notblank validation: %v", err))
	}
	return v
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// parsePrice читает цену; нечисловой текст и значения вне пределов считаются нулём
// negative сообщает знак, в том числе для отрицательных значений вне пределов
func parsePrice(s string) (price decimal.Decimal, negative bool) {
	s = strings.TrimSpace(s)
	price, err := repository.ParsePrice(s)
	switch {
	case errors.Is(err, repository.ErrPriceOutOfRange):
		return decimal.Zero, strings.HasPrefix(s, "-")
	case err != nil:
		return decimal.Zero, false
	}
	return price, price.IsNegative()
}

// parseQuantity читает количество как 32-битное целое; нечисловой текст и переполнение считаются нулём
func parseQuantity(s string) int {
	quantity, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int(quantity)
}

// validateInput проверяет ввод в порядке: заполненность полей, количество, цена
// Возвращает разобранные цену и количество, если ввод корректен
func (s *InventoryService) validateInput(input RegisterProductInput) (decimal.Decimal, int, string, error) {
	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return decimal.Zero, 0, reasonMissingFields, ErrMissingFields
		}
		return decimal.Zero, 0, reasonMissingFields, err
	}

	quantity := parseQuantity(input.Quantity)
	if quantity < 1 {
		return decimal.Zero, 0, reasonInvalidQuantity, ErrInvalidQuantity
	}

	price, negative := parsePrice(input.Price)
	if negative {
		return decimal.Zero, 0, reasonNegativePrice, ErrNegativePrice
	}

	return price, quantity, "", nil
}
