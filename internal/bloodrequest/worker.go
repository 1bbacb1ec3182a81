package bloodrequest

import (
	"context"
	"log/slog"
	"time"
)

// CleanupWorker periodically purges requests past the retention window.
// Run it under the server's errgroup; it stops when the context is
// cancelled.
type CleanupWorker struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewCleanupWorker builds a worker that runs a purge every interval.
func NewCleanupWorker(service *Service, interval time.Duration, logger *slog.Logger) *CleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupWorker{service: service, interval: interval, logger: logger}
}

// Run purges once immediately, then on every tick until ctx is cancelled.
// Purge failures are logged and retried on the next tick rather than
// stopping the worker.
func (w *CleanupWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.purge(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *CleanupWorker) purge(ctx context.Context) {
	if _, err := w.service.Cleanup(ctx); err != nil && w.logger != nil {
		w.logger.ErrorContext(ctx, "blood request cleanup failed", "error", err)
	}
}
