package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shestoi/stockbook/internal/metrics"
	platformhealth "github.com/shestoi/stockbook/platform/health/http"
	platformobservability "github.com/shestoi/stockbook/platform/observability"
)

// NewRouter создаёт и настраивает HTTP роутер stockbook
// readiness - функция готовности; если возвращает false, /health отвечает 503.
// m может быть nil: тогда /metrics не публикуется.
func NewRouter(handler *Handler, readiness func() bool, m *metrics.Metrics, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware("stockbook", logger))
	}
	if m != nil {
		router.Use(m.HTTPMiddleware)
	}

	router.Route("/products", func(r chi.Router) {
		r.Post("/", handler.PostProducts)
		r.Get("/", handler.GetProducts)
		r.Get("/details/{ref}", func(w http.ResponseWriter, r *http.Request) {
			handler.GetProductDetails(w, r, chi.URLParam(r, "ref"))
		})
	})
	router.Get("/statistics", handler.GetStatistics)

	router.Get("/health", platformhealth.Handler(readiness))
	if m != nil {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	return router
}
