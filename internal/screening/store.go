package screening

import (
	"context"

	id "lifeline/pkg/domain"
)

// Store persists audited screenings. Append-only: a screening is never
// updated after it is written.
//
// Error contract:
// - ListByDonor returns an empty slice (not an error) when no rows exist
// - infrastructure failures are returned wrapped with context
type Store interface {
	Append(ctx context.Context, s *Screening) error
	ListByDonor(ctx context.Context, donorID id.DonorID) ([]*Screening, error)
}
