package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	var readiness Readiness

	tests := []struct {
		name       string
		readiness  func() bool
		prepare    func()
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no readiness func",
			readiness:  nil,
			prepare:    func() {},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "not ready by default",
			readiness:  readiness.Ready,
			prepare:    func() {},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"not ready"}`,
		},
		{
			name:       "ready",
			readiness:  readiness.Ready,
			prepare:    readiness.SetReady,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "not serving after shutdown started",
			readiness:  readiness.Ready,
			prepare:    func() { readiness.SetNotServing("") },
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"not ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepare()

			rec := httptest.NewRecorder()
			Handler(tt.readiness)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
