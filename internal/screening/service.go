package screening

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lifeline/internal/screening/metrics"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/requestcontext"
)

// Service runs health screenings: evaluates the questionnaire and keeps an
// audited record when a donor is attached. The rule chain itself lives in
// rules.go so it stays pure and testable.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(s *Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics attaches screening metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs a screening service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("lifeline/screening"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Screen evaluates one questionnaire. An eligibility rejection is a valid
// terminal outcome, not an error: callers get eligible=false with a reason.
// Errors are reserved for infrastructure failures.
//
// When donorID is non-nil the screening is persisted for audit history;
// anonymous screenings are evaluated and returned but not stored.
func (s *Service) Screen(ctx context.Context, donorID *id.DonorID, q Questionnaire) (*Screening, error) {
	ctx, span := s.tracer.Start(ctx, "screening.Screen")
	defer span.End()
	start := time.Now()

	verdict := Evaluate(q)

	sc := &Screening{
		ID:            uuid.New(),
		DonorID:       donorID,
		Questionnaire: q,
		Verdict:       verdict,
		CheckedAt:     requestcontext.Now(ctx),
	}

	if donorID != nil {
		if err := s.store.Append(ctx, sc); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record screening")
		}
	}

	span.SetAttributes(
		attribute.Bool("screening.eligible", verdict.Eligible),
		attribute.String("screening.reason", string(verdict.Reason)),
	)
	s.metrics.IncrementVerdict(verdict.Eligible, string(verdict.Reason))
	s.metrics.ObserveScreenLatency(time.Since(start))

	if s.logger != nil {
		attrs := []any{
			"request_id", requestcontext.RequestID(ctx),
			"eligible", verdict.Eligible,
			"reason", verdict.Reason,
		}
		if donorID != nil {
			attrs = append(attrs, "donor_id", donorID.String())
		}
		s.logger.InfoContext(ctx, "screening evaluated", attrs...)
	}

	return sc, nil
}

// History returns a donor's audited screenings, newest first.
func (s *Service) History(ctx context.Context, donorID id.DonorID) ([]*Screening, error) {
	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "donor id is required")
	}
	screenings, err := s.store.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load screening history")
	}
	return screenings, nil
}
