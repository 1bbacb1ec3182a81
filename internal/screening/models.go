package screening

import (
	"time"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
)

// Questionnaire is one health-check submission. It is transient: the service
// only persists it when a donor is attached to the screening.
type Questionnaire struct {
	Age        int
	WeightKg   float64
	Hemoglobin float64 // g/dL
	Flags      RiskFlags
}

// RiskFlags are the eighteen yes/no answers collected by the health check.
// Only the ten flags covered by Disqualifying gate the verdict. The other
// eight are recorded for medical-staff review and never block eligibility;
// that asymmetry is deliberate and locked by tests.
type RiskFlags struct {
	// Gating flags: any of these makes the donor ineligible.
	RecentIllness  bool // illness in the last 2 weeks
	Medication     bool // currently taking medication
	Alcohol24h     bool // alcohol in the last 24 hours
	Smoking        bool // smoked in the last 24 hours
	Tattoo6m       bool // tattoo or piercing in the last 6 months
	Surgery6m      bool // surgery in the last 6 months
	ChronicDisease bool
	Pregnant       bool
	CovidRecent    bool // COVID-19 positive in the last 28 days
	TravelMalaria  bool // malaria-zone travel in the last 3 months

	// Informational flags: recorded, never gate the verdict.
	HighBloodPressure bool
	Diabetes          bool
	HeartDisease      bool
	IronDeficiency    bool
	InfectiousDisease bool
	RecentDental      bool
	RecentVaccination bool
	RecentPiercing    bool
}

// Reason identifies which rule decided the verdict.
type Reason string

const (
	ReasonAgeOutOfRange   Reason = "age_out_of_range"
	ReasonUnderweight     Reason = "underweight"
	ReasonLowHemoglobin   Reason = "low_hemoglobin"
	ReasonHealthFactor    Reason = "health_factor"
	ReasonAllChecksPassed Reason = "all_checks_passed"
)

// Verdict is the outcome of evaluating one questionnaire. Computed once per
// submission and never mutated afterward.
type Verdict struct {
	Eligible bool
	Reason   Reason
}

// Screening is the audited record of an evaluated questionnaire. DonorID is
// nil for anonymous checks, which are evaluated but not persisted.
type Screening struct {
	ID            uuid.UUID
	DonorID       *id.DonorID
	Questionnaire Questionnaire
	Verdict       Verdict
	CheckedAt     time.Time
}
