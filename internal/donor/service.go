package donor

import (
	"context"
	"errors"
	"log/slog"

	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/platform/sentinel"
	"lifeline/pkg/requestcontext"
)

// Service manages the donor directory: registration, profile updates, and
// the public search requesters use to find a match.
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

// NewService constructs a donor service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new donor profile. The email must not already be in
// the directory.
func (s *Service) Register(ctx context.Context, d *Donor) (*Donor, error) {
	now := requestcontext.Now(ctx)
	d.ID = id.NewDonorID()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.store.Create(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register donor")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "donor registered",
			"request_id", requestcontext.RequestID(ctx),
			"donor_id", d.ID.String(),
			"blood_group", d.BloodGroup,
		)
	}
	return d, nil
}

// Get returns one donor profile.
func (s *Service) Get(ctx context.Context, donorID id.DonorID) (*Donor, error) {
	d, err := s.store.Get(ctx, donorID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "donor not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donor")
	}
	return d, nil
}

// Update replaces a donor's profile fields. The donor must already exist.
func (s *Service) Update(ctx context.Context, d *Donor) (*Donor, error) {
	existing, err := s.Get(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update donor")
	}
	return d, nil
}

// Search finds donors matching the criteria. At least one criterion is
// required; listing the whole directory is not a supported operation.
func (s *Service) Search(ctx context.Context, criteria SearchCriteria) ([]*Donor, error) {
	if criteria.Empty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "at least one search criterion is required")
	}
	donors, err := s.store.Search(ctx, criteria)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search donors")
	}
	return donors, nil
}
