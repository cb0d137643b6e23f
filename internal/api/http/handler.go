package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/stockbook/internal/service"
	"github.com/shestoi/stockbook/internal/transfer"
	platformobservability "github.com/shestoi/stockbook/platform/observability"
)

// maxBodyBytes ограничение тела запроса регистрации
const maxBodyBytes = 1 << 20

// Handler содержит HTTP-обработчики stockbook
// Зависит от service слоя, но не знает о хранилище
type Handler struct {
	inventoryService *service.InventoryService
	logger           *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(inventoryService *service.InventoryService, logger *zap.Logger) *Handler {
	return &Handler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// PostProducts обрабатывает POST /products - регистрация товара
// При успехе возвращает 201 и Location на список товаров
func (h *Handler) PostProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log(r)

	var reqBody CreateProductRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&reqBody); err != nil {
		log.Info("invalid JSON in create product request", zap.Error(err))
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	result, err := h.inventoryService.RegisterProduct(ctx, service.RegisterProductInput{
		Name:     string(reqBody.Name),
		Category: string(reqBody.Category),
		Price:    string(reqBody.Price),
		Quantity: string(reqBody.Quantity),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.writeError(w, r, http.StatusBadRequest, service.ErrMissingFields.Error())
		case errors.Is(err, service.ErrInvalidQuantity):
			h.writeError(w, r, http.StatusBadRequest, service.ErrInvalidQuantity.Error())
		case errors.Is(err, service.ErrNegativePrice):
			h.writeError(w, r, http.StatusBadRequest, service.ErrNegativePrice.Error())
		default:
			log.Error("failed to register product", zap.Error(err))
			h.writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.Header().Set("Location", "/products")
	h.writeJSON(w, r, http.StatusCreated, toProductResponse(result.Product, result.Ref))
}

// GetProducts обрабатывает GET /products - список товаров в порядке регистрации
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	result := h.inventoryService.ListProducts(r.Context())

	resp := ListProductsResponse{
		Items:               make([]ProductResponse, 0, len(result.Products)),
		Empty:               len(result.Products) == 0,
		StatisticsAvailable: result.StatisticsAvailable,
	}
	for _, p := range result.Products {
		resp.Items = append(resp.Items, toProductResponse(p.Product, p.Ref))
	}
	if resp.Empty {
		resp.Message = emptyListMessage
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}

// GetProductDetails обрабатывает GET /products/details/{ref} - детали товара, переданного по значению
func (h *Handler) GetProductDetails(w http.ResponseWriter, r *http.Request, ref string) {
	product, err := h.inventoryService.ProductDetails(r.Context(), ref)
	if err != nil {
		if errors.Is(err, transfer.ErrMalformed) {
			h.writeError(w, r, http.StatusBadRequest, "invalid product reference")
			return
		}
		h.log(r).Error("failed to read product details", zap.Error(err))
		h.writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, r, http.StatusOK, toProductDetailsResponse(product))
}

// GetStatistics обрабатывает GET /statistics - агрегаты на момент запроса
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats := h.inventoryService.Statistics(r.Context())

	h.writeJSON(w, r, http.StatusOK, StatisticsResponse{
		TotalValue:    stats.TotalValue.String(),
		TotalQuantity: stats.TotalQuantity,
	})
}

func (h *Handler) log(r *http.Request) *zap.Logger {
	return platformobservability.Logger(r.Context(), h.logger)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log(r).Error("Failed to encode response", zap.Error(err))
	}
}
