package domain

import (
	"github.com/google/uuid"

	dErrors "lifeline/pkg/domain-errors"
)

// Typed IDs keep donor, hospital, and request identities from being mixed up
// at compile time. Construct via Parse* at trust boundaries; direct casting
// bypasses validation.
type (
	DonorID    uuid.UUID
	HospitalID uuid.UUID
	RequestID  uuid.UUID
)

// NewDonorID returns a fresh random donor ID.
func NewDonorID() DonorID { return DonorID(uuid.New()) }

// NewHospitalID returns a fresh random hospital ID.
func NewHospitalID() HospitalID { return HospitalID(uuid.New()) }

// NewRequestID returns a fresh random request ID.
func NewRequestID() RequestID { return RequestID(uuid.New()) }

// ParseDonorID constructs a DonorID from external input.
// Errors: CodeInvalidInput when the value is empty, malformed, or nil.
func ParseDonorID(s string) (DonorID, error) {
	u, err := parseUUID(s, "donor id")
	return DonorID(u), err
}

// ParseHospitalID constructs a HospitalID from external input.
func ParseHospitalID(s string) (HospitalID, error) {
	u, err := parseUUID(s, "hospital id")
	return HospitalID(u), err
}

// ParseRequestID constructs a RequestID from external input.
func ParseRequestID(s string) (RequestID, error) {
	u, err := parseUUID(s, "request id")
	return RequestID(u), err
}

func (id DonorID) String() string    { return uuid.UUID(id).String() }
func (id HospitalID) String() string { return uuid.UUID(id).String() }
func (id RequestID) String() string  { return uuid.UUID(id).String() }

func (id DonorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id HospitalID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RequestID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", what)
	}
	return u, nil
}
