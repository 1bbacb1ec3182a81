package donor

import (
	"context"

	id "lifeline/pkg/domain"
)

// Store persists donor profiles.
//
// Implementations return sentinel.ErrNotFound for unknown donors and
// sentinel.ErrConflict when an email is already registered; all other
// failures are returned as-is for the service layer to wrap.
type Store interface {
	Create(ctx context.Context, d *Donor) error
	Get(ctx context.Context, donorID id.DonorID) (*Donor, error)
	Update(ctx context.Context, d *Donor) error
	Search(ctx context.Context, criteria SearchCriteria) ([]*Donor, error)
}
