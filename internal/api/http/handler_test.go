package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/shestoi/stockbook/internal/metrics"
	"github.com/shestoi/stockbook/internal/repository/memory"
	"github.com/shestoi/stockbook/internal/service"
)

type testServer struct {
	store  *memory.Store
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore()
	svc := service.NewInventoryService(logger, store, nil, nil)
	router := NewRouter(NewHandler(svc, logger), nil, metrics.New(store), logger)

	return &testServer{store: store, router: router}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPostProducts_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "blank name",
			body:       `{"name":"  ","category":"Hardware","price":"10","quantity":"5"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "all fields are required",
		},
		{
			name:       "missing quantity",
			body:       `{"name":"Widget","category":"Hardware","price":"10"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "all fields are required",
		},
		{
			name:       "quantity zero",
			body:       `{"name":"Widget","category":"Hardware","price":"10","quantity":"0"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "quantity must be greater than 0",
		},
		{
			name:       "negative price",
			body:       `{"name":"Widget","category":"Hardware","price":"-1","quantity":"1"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "price cannot be negative",
		},
		{
			name:       "invalid json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid JSON",
		},
		{
			name:       "object where text expected",
			body:       `{"name":{"x":1},"category":"Hardware","price":"10","quantity":"5"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)

			rec := srv.do(t, http.MethodPost, "/products", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decode[ErrorResponse](t, rec)
			require.Contains(t, resp.Error, tt.wantError)
			require.Equal(t, 0, srv.store.Len())
		})
	}
}

func TestPostProducts_Created(t *testing.T) {
	srv := newTestServer(t)

	// quantity 1 и price 0 допустимы; числа принимаются и как JSON-числа
	rec := srv.do(t, http.MethodPost, "/products", `{"name":"Sample","category":"Free","price":0,"quantity":1}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/products", rec.Header().Get("Location"))

	resp := decode[ProductResponse](t, rec)
	require.Equal(t, "Sample", resp.Name)
	require.Equal(t, "Free", resp.Category)
	require.Equal(t, "0", resp.Price)
	require.Equal(t, 1, resp.Quantity)
	require.Equal(t, "Sample (1 units)", resp.Summary)
	require.NotEmpty(t, resp.Ref)
	require.Equal(t, 1, srv.store.Len())
}

func TestPostProducts_HugeExponentPriceStaysSmall(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/products", `{"name":"W","category":"H","price":"1e20000000","quantity":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Less(t, rec.Body.Len(), 1024)
	require.Equal(t, "0", decode[ProductResponse](t, rec).Price)

	rec = srv.do(t, http.MethodPost, "/products", `{"name":"W","category":"H","price":"-1e20000000","quantity":"1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, service.ErrNegativePrice.Error(), decode[ErrorResponse](t, rec).Error)

	rec = srv.do(t, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Less(t, rec.Body.Len(), 1024)

	stats := decode[StatisticsResponse](t, srv.do(t, http.MethodGet, "/statistics", ""))
	require.Equal(t, "0", stats.TotalValue)
	require.Equal(t, 1, stats.TotalQuantity)
}

func TestGetProducts(t *testing.T) {
	srv := newTestServer(t)

	t.Run("empty", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[ListProductsResponse](t, rec)
		require.True(t, resp.Empty)
		require.Equal(t, "no products registered", resp.Message)
		require.False(t, resp.StatisticsAvailable)
		require.Empty(t, resp.Items)
	})

	require.Equal(t, http.StatusCreated,
		srv.do(t, http.MethodPost, "/products", `{"name":"Widget","category":"Hardware","price":"10.0","quantity":"5"}`).Code)
	require.Equal(t, http.StatusCreated,
		srv.do(t, http.MethodPost, "/products", `{"name":"Gadget","category":"Electronics","price":"2.5","quantity":"4"}`).Code)

	t.Run("in registration order", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[ListProductsResponse](t, rec)
		require.False(t, resp.Empty)
		require.Empty(t, resp.Message)
		require.True(t, resp.StatisticsAvailable)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Widget", resp.Items[0].Name)
		assert.Equal(t, "Widget (5 units)", resp.Items[0].Summary)
		assert.Equal(t, "Gadget", resp.Items[1].Name)
	})
}

func TestGetProductDetails(t *testing.T) {
	srv := newTestServer(t)

	created := decode[ProductResponse](t,
		srv.do(t, http.MethodPost, "/products", `{"name":"Widget","category":"Hardware","price":"10.5","quantity":"5"}`))

	t.Run("valid ref", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/products/details/"+created.Ref, "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[ProductDetailsResponse](t, rec)
		require.Equal(t, "Widget", resp.Name)
		require.Equal(t, "Hardware", resp.Category)
		require.Equal(t, "10.5", resp.Price)
		require.Equal(t, 5, resp.Quantity)
		require.Equal(t, "R$10.50", resp.Display.Price)
		require.Equal(t, "5", resp.Display.Quantity)
	})

	t.Run("ref with huge exponent price", func(t *testing.T) {
		b := protowire.AppendTag(nil, 1, protowire.BytesType)
		b = protowire.AppendString(b, "Widget")
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, "Hardware")
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, "1e2000000000")
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(1))

		rec := srv.do(t, http.MethodGet, "/products/details/"+base64.RawURLEncoding.EncodeToString(b), "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid product reference", decode[ErrorResponse](t, rec).Error)
	})

	t.Run("malformed ref", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/products/details/not-a-token", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid product reference", decode[ErrorResponse](t, rec).Error)
	})

	// детали не читают и не меняют склад
	require.Equal(t, 1, srv.store.Len())
}

func TestGetStatistics(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[StatisticsResponse](t, rec)
	require.Equal(t, "0", stats.TotalValue)
	require.Equal(t, 0, stats.TotalQuantity)

	srv.do(t, http.MethodPost, "/products", `{"name":"Widget","category":"Hardware","price":"10.0","quantity":"5"}`)
	stats = decode[StatisticsResponse](t, srv.do(t, http.MethodGet, "/statistics", ""))
	require.Equal(t, "50", stats.TotalValue)
	require.Equal(t, 5, stats.TotalQuantity)

	srv.do(t, http.MethodPost, "/products", `{"name":"Gadget","category":"Electronics","price":"2.5","quantity":"4"}`)
	stats = decode[StatisticsResponse](t, srv.do(t, http.MethodGet, "/statistics", ""))
	require.Equal(t, "60", stats.TotalValue)
	require.Equal(t, 9, stats.TotalQuantity)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	srv.do(t, http.MethodPost, "/products", `{"name":"Widget","category":"Hardware","price":"10.0","quantity":"5"}`)

	rec = srv.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "stockbook_inventory_total_quantity 5")
}
