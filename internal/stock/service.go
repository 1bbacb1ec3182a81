package stock

import (
	"context"
	"errors"
	"log/slog"

	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/platform/sentinel"
	"lifeline/pkg/requestcontext"
)

// Service manages hospital blood stock and the public live view.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures a Service.
type Option func(s *Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService constructs a stock service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert sets a hospital's holding for one blood group, creating the row
// on first write.
func (s *Service) Upsert(ctx context.Context, row *Stock) (*Stock, error) {
	if row.Units < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "units must not be negative")
	}
	if row.ExpiresOn.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "expiry date is required")
	}
	row.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Upsert(ctx, row); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert stock")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "stock updated",
			"request_id", requestcontext.RequestID(ctx),
			"hospital_id", row.HospitalID.String(),
			"blood_group", row.BloodGroup,
			"units", row.Units,
		)
	}
	return row, nil
}

// ListByHospital returns one hospital's holdings ordered by blood group.
func (s *Service) ListByHospital(ctx context.Context, hospitalID id.HospitalID) ([]*Stock, error) {
	if hospitalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "hospital id is required")
	}
	rows, err := s.store.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list stock")
	}
	return rows, nil
}

// LiveView returns all holdings across hospitals ordered by blood group.
func (s *Service) LiveView(ctx context.Context) ([]*Stock, error) {
	rows, err := s.store.LiveView(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load live stock view")
	}
	return rows, nil
}

// Delete removes a hospital's holding for one blood group.
func (s *Service) Delete(ctx context.Context, hospitalID id.HospitalID, group id.BloodGroup) error {
	err := s.store.Delete(ctx, hospitalID, group)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "stock entry not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete stock")
	}
	return nil
}
