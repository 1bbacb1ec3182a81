package donation

import (
	"time"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
)

// Donation is one recorded donation event. Immutable once created; the
// donor's ledger is derived from this append-only history.
type Donation struct {
	ID         uuid.UUID
	DonorID    id.DonorID
	Date       time.Time // calendar date, UTC midnight
	Location   string
	RecordedAt time.Time
}

// Ledger is the per-donor summary cached off the donation history. The
// history stays authoritative: Service.Reconcile re-derives the ledger from
// the events to repair any drift.
type Ledger struct {
	DonorID          id.DonorID
	TotalDonations   int
	LastDonationDate *time.Time // nil until the first donation
	Badge            Badge
	UpdatedAt        time.Time
}

// Apply folds one donation event into the ledger: counter up by exactly one,
// last date advanced only when the new date is later (out-of-order backfills
// must not move it backwards), badge recomputed from the new total.
func (l *Ledger) Apply(d *Donation) {
	l.TotalDonations++
	if l.LastDonationDate == nil || d.Date.After(*l.LastDonationDate) {
		date := d.Date
		l.LastDonationDate = &date
	}
	l.Badge = ComputeBadge(l.TotalDonations)
	l.UpdatedAt = d.RecordedAt
}

// Status is the donor-facing lifecycle summary consumed by the profile
// display layer.
type Status struct {
	DonorID          id.DonorID
	TotalDonations   int
	Badge            Badge
	Eligible         bool
	NextEligibleDate *time.Time
	DaysLeft         int // only meaningful when not eligible
}

// DateOnly normalizes a timestamp to its calendar date at UTC midnight.
// All cooldown math runs on dates, never on wall-clock instants.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
