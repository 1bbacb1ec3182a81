package bloodrequest

import (
	"context"
	"log/slog"

	"lifeline/internal/bloodrequest/metrics"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/requestcontext"
)

// Service handles public blood request submissions and the 24-hour request
// board.
type Service struct {
	store       Store
	broadcaster Broadcaster
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures a Service.
type Option func(s *Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics attaches blood request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithBroadcaster attaches an urgent-request broadcaster. Without one,
// urgent submissions are stored but not fanned out.
func WithBroadcaster(b Broadcaster) Option {
	return func(s *Service) {
		s.broadcaster = b
	}
}

// NewService constructs a blood request service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores one request and, when urgent, broadcasts it for downstream
// notification. A broadcast failure never fails the submission: the request
// is already on the board, so the caller gets success and the failure is
// surfaced through logs and metrics.
func (s *Service) Submit(ctx context.Context, r *Request) (*Request, error) {
	r.ID = id.NewRequestID()
	r.Status = StatusPending
	r.CreatedAt = requestcontext.Now(ctx)

	if err := s.store.Create(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store blood request")
	}
	s.metrics.IncrementSubmission(r.Urgent)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "blood request submitted",
			"request_id", requestcontext.RequestID(ctx),
			"blood_request_id", r.ID.String(),
			"blood_group", r.BloodGroup,
			"urgent", r.Urgent,
		)
	}

	if r.Urgent && s.broadcaster != nil {
		if err := s.broadcaster.BroadcastUrgent(ctx, r); err != nil {
			s.metrics.IncrementBroadcastFailure()
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "urgent broadcast failed",
					"request_id", requestcontext.RequestID(ctx),
					"blood_request_id", r.ID.String(),
					"error", err,
				)
			}
		}
	}

	return r, nil
}

// List returns the request board: everything submitted within the retention
// window and matching the filter, urgent first then newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Request, error) {
	since := requestcontext.Now(ctx).Add(-RetentionWindow)
	requests, err := s.store.List(ctx, filter, since)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list blood requests")
	}
	return requests, nil
}

// Cleanup deletes requests older than the retention window and returns how
// many were removed.
func (s *Service) Cleanup(ctx context.Context) (int, error) {
	cutoff := requestcontext.Now(ctx).Add(-RetentionWindow)
	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge blood requests")
	}
	s.metrics.AddPurged(deleted)

	if deleted > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "expired blood requests purged", "deleted", deleted)
	}
	return deleted, nil
}
