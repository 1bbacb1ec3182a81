package stock

import (
	"time"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
)

// Stock is one hospital's holding of a single blood group. A hospital has
// at most one row per group; Upsert keeps that invariant.
type Stock struct {
	ID         uuid.UUID
	HospitalID id.HospitalID
	BloodGroup id.BloodGroup
	Units      int
	ExpiresOn  time.Time
	UpdatedAt  time.Time
}
