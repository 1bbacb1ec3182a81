package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "lifeline/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseDonorID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseDonorID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseDonorID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseDonorID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, DonorID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
func TestTypeDistinction(t *testing.T) {
	donorID := DonorID(uuid.New())
	hospitalID := HospitalID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ DonorID = hospitalID   // compile error
	// var _ HospitalID = donorID   // compile error

	assert.NotEqual(t, uuid.UUID(donorID), uuid.UUID(hospitalID))
}

func TestParseBloodGroup(t *testing.T) {
	t.Run("accepts all eight groups", func(t *testing.T) {
		for _, raw := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
			g, err := ParseBloodGroup(raw)
			require.NoError(t, err)
			assert.Equal(t, BloodGroup(raw), g)
		}
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		g, err := ParseBloodGroup("ab+")
		require.NoError(t, err)
		assert.Equal(t, BloodGroupABPos, g)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		g, err := ParseBloodGroup(" o- ")
		require.NoError(t, err)
		assert.Equal(t, BloodGroupONeg, g)
	})

	t.Run("rejects empty and unsupported values", func(t *testing.T) {
		for _, raw := range []string{"", "C+", "AB", "+"} {
			_, err := ParseBloodGroup(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}
