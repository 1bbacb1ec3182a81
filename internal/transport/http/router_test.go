package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline/pkg/requestcontext"
)

type captureRegistrar struct {
	requestID string
}

func (c *captureRegistrar) Register(r chi.Router) {
	r.Get("/probe", func(w http.ResponseWriter, req *http.Request) {
		c.requestID = requestcontext.RequestID(req.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRouterStampsRequestContext(t *testing.T) {
	capture := &captureRegistrar{}
	router := NewRouter(slog.New(slog.DiscardHandler), nil, capture)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/probe", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, capture.requestID)
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("ok when dependencies answer", func(t *testing.T) {
		router := NewRouter(slog.New(slog.DiscardHandler), func(context.Context) error { return nil })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok"`)
	})

	t.Run("degraded when a dependency fails", func(t *testing.T) {
		router := NewRouter(slog.New(slog.DiscardHandler), func(context.Context) error { return errors.New("postgres down") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := NewRouter(slog.New(slog.DiscardHandler), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
}
