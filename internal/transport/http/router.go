// Package httptransport assembles the HTTP surface: feature handlers
// mounted under /api/v1, plus the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lifeline/pkg/platform/httputil"
	"lifeline/pkg/requestcontext"
)

// Registrar mounts a feature's endpoints on a router.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker func(ctx context.Context) error

// NewRouter wires the full HTTP surface. Every request gets a request ID
// and a pinned request time in its context before reaching a handler.
func NewRouter(logger *slog.Logger, health HealthChecker, registrars ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestContext)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealth(logger, health))

	r.Route("/api/v1", func(api chi.Router) {
		for _, registrar := range registrars {
			registrar.Register(api)
		}
	})

	return r
}

// requestContext stamps each request with an ID for log correlation and a
// single observation of the clock, so every layer of one request agrees on
// "now".
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithRequestID(r.Context(), uuid.NewString())
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func handleHealth(logger *slog.Logger, health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				if logger != nil {
					logger.ErrorContext(r.Context(), "health check failed", "error", err)
				}
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
