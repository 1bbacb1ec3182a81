package donation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lifeline/internal/donation/metrics"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/platform/sentinel"
	"lifeline/pkg/requestcontext"
)

// Service tracks the donation lifecycle: the append-only event history, the
// per-donor ledger derived from it, badge tiers, and the 90-day cooldown.
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

// WithMetrics attaches donation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs a donation service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("lifeline/donation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends one donation event and updates the donor's ledger in the
// same atomic step. A zero date defaults to today. Future dates are
// rejected; past dates are accepted as backfills and never move the last
// donation date backwards.
func (s *Service) Record(ctx context.Context, donorID id.DonorID, date time.Time, location string) (*Ledger, error) {
	ctx, span := s.tracer.Start(ctx, "donation.Record")
	defer span.End()
	start := time.Now()

	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "donor id is required")
	}

	now := requestcontext.Now(ctx)
	today := DateOnly(now)
	if date.IsZero() {
		date = today
	} else {
		date = DateOnly(date)
	}
	if date.After(today) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "donation date cannot be in the future")
	}

	d := &Donation{
		ID:         uuid.New(),
		DonorID:    donorID,
		Date:       date,
		Location:   location,
		RecordedAt: now,
	}

	var promotedTo Badge
	ledger, err := s.store.RecordDonation(ctx, d, func(l *Ledger) {
		before := l.Badge
		l.Apply(d)
		if l.Badge != before {
			promotedTo = l.Badge
		}
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record donation")
	}

	span.SetAttributes(
		attribute.Int("donation.total", ledger.TotalDonations),
		attribute.String("donation.badge", string(ledger.Badge)),
	)
	s.metrics.IncrementRecorded()
	if promotedTo != "" {
		s.metrics.IncrementBadgePromotion(string(promotedTo))
	}
	s.metrics.ObserveRecordLatency(time.Since(start))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "donation recorded",
			"request_id", requestcontext.RequestID(ctx),
			"donor_id", donorID.String(),
			"donated_on", date.Format(time.DateOnly),
			"total_donations", ledger.TotalDonations,
			"badge", ledger.Badge,
		)
	}

	return ledger, nil
}

// Status reports a donor's lifecycle summary. A donor with no recorded
// donations is a New Donor and immediately eligible.
func (s *Service) Status(ctx context.Context, donorID id.DonorID) (*Status, error) {
	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "donor id is required")
	}

	ledger, err := s.store.GetLedger(ctx, donorID)
	if errors.Is(err, sentinel.ErrNotFound) {
		ledger = &Ledger{DonorID: donorID, Badge: BadgeNewDonor}
	} else if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donor ledger")
	}

	today := DateOnly(requestcontext.Now(ctx))
	cd := CheckCooldown(ledger.LastDonationDate, today)

	return &Status{
		DonorID:          donorID,
		TotalDonations:   ledger.TotalDonations,
		Badge:            ledger.Badge,
		Eligible:         cd.Eligible,
		NextEligibleDate: cd.NextEligibleDate,
		DaysLeft:         cd.DaysLeft(today),
	}, nil
}

// History returns a donor's donation events, most recent date first.
func (s *Service) History(ctx context.Context, donorID id.DonorID) ([]*Donation, error) {
	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "donor id is required")
	}
	donations, err := s.store.ListDonations(ctx, donorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donation history")
	}
	return donations, nil
}

// Reconcile re-derives the donor's ledger from the event history and
// rewrites the cached row when the two disagree. Returns the authoritative
// ledger and whether a repair was made.
func (s *Service) Reconcile(ctx context.Context, donorID id.DonorID) (*Ledger, bool, error) {
	ctx, span := s.tracer.Start(ctx, "donation.Reconcile")
	defer span.End()

	if donorID.IsNil() {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "donor id is required")
	}

	derived, err := s.store.DeriveLedger(ctx, donorID)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to derive ledger")
	}

	cached, err := s.store.GetLedger(ctx, donorID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donor ledger")
	}

	if cached != nil && ledgersAgree(cached, derived) {
		return cached, false, nil
	}

	if err := s.store.SaveLedger(ctx, derived); err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to repair ledger")
	}
	s.metrics.IncrementLedgerRepair()

	if s.logger != nil {
		s.logger.WarnContext(ctx, "donor ledger repaired",
			"request_id", requestcontext.RequestID(ctx),
			"donor_id", donorID.String(),
			"total_donations", derived.TotalDonations,
			"badge", derived.Badge,
		)
	}

	return derived, true, nil
}

func ledgersAgree(a, b *Ledger) bool {
	if a.TotalDonations != b.TotalDonations || a.Badge != b.Badge {
		return false
	}
	if (a.LastDonationDate == nil) != (b.LastDonationDate == nil) {
		return false
	}
	if a.LastDonationDate != nil && !a.LastDonationDate.Equal(*b.LastDonationDate) {
		return false
	}
	return true
}
