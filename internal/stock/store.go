package stock

import (
	"context"

	id "lifeline/pkg/domain"
)

// Store persists blood stock rows.
//
// Upsert creates the (hospital, blood group) row when missing, otherwise
// overwrites units and expiry. Implementations return sentinel.ErrNotFound
// from Delete when the row does not exist.
type Store interface {
	Upsert(ctx context.Context, s *Stock) error
	ListByHospital(ctx context.Context, hospitalID id.HospitalID) ([]*Stock, error)
	LiveView(ctx context.Context) ([]*Stock, error)
	Delete(ctx context.Context, hospitalID id.HospitalID, group id.BloodGroup) error
}
