package screening

// Numeric thresholds for donation fitness. The intake form allows weights
// down to 45 kg, but 50 kg is the business rule and the one enforced here.
const (
	MinAge        = 18
	MaxAge        = 65
	MinWeightKg   = 50.0
	MinHemoglobin = 12.5 // g/dL
)

// Evaluate applies the eligibility rule chain to produce a verdict.
// This is pure domain logic - no I/O, no side effects.
//
// Rule priority (fail-fast, first failing rule sets the reason):
//  1. Age within [18, 65]
//  2. Weight at least 50 kg
//  3. Hemoglobin at least 12.5 g/dL
//  4. No disqualifying risk flag (the flag itself is not identified)
func Evaluate(q Questionnaire) Verdict {
	if q.Age < MinAge || q.Age > MaxAge {
		return Verdict{Eligible: false, Reason: ReasonAgeOutOfRange}
	}
	if q.WeightKg < MinWeightKg {
		return Verdict{Eligible: false, Reason: ReasonUnderweight}
	}
	if q.Hemoglobin < MinHemoglobin {
		return Verdict{Eligible: false, Reason: ReasonLowHemoglobin}
	}
	if q.Flags.Disqualifying() {
		return Verdict{Eligible: false, Reason: ReasonHealthFactor}
	}
	return Verdict{Eligible: true, Reason: ReasonAllChecksPassed}
}

// Disqualifying reports whether any of the ten gating flags is set.
// The informational flags are intentionally absent from this check.
func (f RiskFlags) Disqualifying() bool {
	return f.RecentIllness ||
		f.Medication ||
		f.Alcohol24h ||
		f.Smoking ||
		f.Tattoo6m ||
		f.Surgery6m ||
		f.ChronicDisease ||
		f.Pregnant ||
		f.CovidRecent ||
		f.TravelMalaria
}
