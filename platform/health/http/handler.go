package http

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Readiness флаг готовности сервиса принимать трафик
// Нулевое значение: не готов
type Readiness struct {
	ready atomic.Bool
}

// SetReady помечает сервис готовым
func (r *Readiness) SetReady() { r.ready.Store(true) }

// SetNotServing снимает готовность (совместим с shutdown.SetHealthNotServing)
func (r *Readiness) SetNotServing(string) { r.ready.Store(false) }

// Ready сообщает текущее состояние
func (r *Readiness) Ready() bool { return r.ready.Load() }

// Handler возвращает HTTP handler для health check endpoint.
// Возвращает 200 OK с JSON телом {"status":"ok"} если readiness функция не указана
// или если readiness функция возвращает true.
// Возвращает 503 Service Unavailable если readiness функция указана и возвращает false.
func Handler(readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if readiness != nil && !readiness() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
