package donation

import (
	"context"

	id "lifeline/pkg/domain"
)

// Store persists donation events and the per-donor ledgers derived from
// them.
//
// Implementations return sentinel.ErrNotFound when a requested ledger does
// not exist; all other failures are returned as-is for the service layer to
// wrap.
type Store interface {
	// RecordDonation appends the event and applies apply to the donor's
	// ledger as one atomic unit: either both are visible afterwards or
	// neither is. The ledger is created zero-valued on a donor's first
	// donation. Concurrent calls for the same donor serialize, so every
	// recorded event is counted exactly once.
	RecordDonation(ctx context.Context, d *Donation, apply func(*Ledger)) (*Ledger, error)

	// GetLedger returns the cached ledger for the donor.
	GetLedger(ctx context.Context, donorID id.DonorID) (*Ledger, error)

	// ListDonations returns the donor's events, most recent date first.
	ListDonations(ctx context.Context, donorID id.DonorID) ([]*Donation, error)

	// DeriveLedger rebuilds a ledger from the event history alone,
	// ignoring the cached row. Used by the reconcile path.
	DeriveLedger(ctx context.Context, donorID id.DonorID) (*Ledger, error)

	// SaveLedger overwrites the cached ledger with l.
	SaveLedger(ctx context.Context, l *Ledger) error
}
