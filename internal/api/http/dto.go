package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shestoi/stockbook/internal/repository"
)

// emptyListMessage показывается вместо списка, когда товаров нет
const emptyListMessage = "no products registered"

// currencyPrefix префикс цены на экране деталей
const currencyPrefix = "R$"

// textField значение поля формы
// Принимает JSON-строку или JSON-число; null и отсутствие поля дают пустую строку
type textField string

func (f *textField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = textField(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("field must be a string or a number: %w", err)
		}
		*f = textField(n.String())
	}
	return nil
}

// CreateProductRequest тело POST /products
type CreateProductRequest struct {
	Name     textField `json:"name"`
	Category textField `json:"category"`
	Price    textField `json:"price"`
	Quantity textField `json:"quantity"`
}

// ProductResponse товар в ответах API
type ProductResponse struct {
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	// Summary строка списка: "Widget (5 units)"
	Summary string `json:"summary"`
}

// ListProductsResponse ответ GET /products
type ListProductsResponse struct {
	Items               []ProductResponse `json:"items"`
	Empty               bool              `json:"empty"`
	Message             string            `json:"message,omitempty"`
	StatisticsAvailable bool              `json:"statistics_available"`
}

// ProductDisplay поля экрана деталей в готовом для показа виде
type ProductDisplay struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// ProductDetailsResponse ответ GET /products/details/{ref}
type ProductDetailsResponse struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Price    string         `json:"price"`
	Quantity int            `json:"quantity"`
	Display  ProductDisplay `json:"display"`
}

// StatisticsResponse ответ GET /statistics
type StatisticsResponse struct {
	TotalValue    string `json:"total_value"`
	TotalQuantity int    `json:"total_quantity"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func toProductResponse(p repository.Product, ref string) ProductResponse {
	return ProductResponse{
		Ref:      ref,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.String(),
		Quantity: p.Quantity,
		Summary:  fmt.Sprintf("%s (%d units)", p.Name, p.Quantity),
	}
}

func toProductDetailsResponse(p repository.Product) ProductDetailsResponse {
	return ProductDetailsResponse{
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.String(),
		Quantity: p.Quantity,
		Display: ProductDisplay{
			Name:     p.Name,
			Category: p.Category,
			Price:    currencyPrefix + p.Price.StringFixed(2),
			Quantity: strconv.Itoa(p.Quantity),
		},
	}
}
