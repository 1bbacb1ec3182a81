package handler

import (
	"strings"

	"lifeline/internal/screening"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
)

// ScreenRequest is the HTTP request body for POST /screenings.
//
// The numeric fields are pointers so "missing" and "zero" stay distinct:
// absent numerics are a validation failure (indeterminate, resubmit), never
// an eligibility verdict. Flags default to false when omitted.
type ScreenRequest struct {
	DonorID    string   `json:"donor_id,omitempty"`
	Age        *int     `json:"age"`
	WeightKg   *float64 `json:"weight_kg"`
	Hemoglobin *float64 `json:"hemoglobin_level"`

	RecentIllness  bool `json:"recent_illness"`
	Medication     bool `json:"medication"`
	Alcohol24h     bool `json:"alcohol_24h"`
	Smoking        bool `json:"smoking"`
	Tattoo6m       bool `json:"tattoo_6m"`
	Surgery6m      bool `json:"surgery_6m"`
	ChronicDisease bool `json:"chronic_disease"`
	Pregnant       bool `json:"pregnant"`
	CovidRecent    bool `json:"covid_recent"`
	TravelMalaria  bool `json:"travel_malaria"`

	HighBloodPressure bool `json:"high_blood_pressure"`
	Diabetes          bool `json:"diabetes"`
	HeartDisease      bool `json:"heart_disease"`
	IronDeficiency    bool `json:"iron_deficiency"`
	InfectiousDisease bool `json:"infectious_disease"`
	RecentDental      bool `json:"recent_dental"`
	RecentVaccination bool `json:"recent_vaccination"`
	RecentPiercing    bool `json:"recent_piercing"`

	// Parsed values (populated by Validate)
	parsedDonorID *id.DonorID
}

// Validate checks the numeric fields and parses the optional donor ID.
// All problems are reported in one aggregated error so the client can fix
// the whole submission in a single pass.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ScreenRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	var problems []string
	if r.Age == nil {
		problems = append(problems, "age is required")
	} else if *r.Age < 0 {
		problems = append(problems, "age must not be negative")
	}
	if r.WeightKg == nil {
		problems = append(problems, "weight_kg is required")
	} else if *r.WeightKg <= 0 {
		problems = append(problems, "weight_kg must be positive")
	}
	if r.Hemoglobin == nil {
		problems = append(problems, "hemoglobin_level is required")
	} else if *r.Hemoglobin <= 0 {
		problems = append(problems, "hemoglobin_level must be positive")
	}
	if len(problems) > 0 {
		return dErrors.New(dErrors.CodeValidation, strings.Join(problems, "; "))
	}

	if r.DonorID = strings.TrimSpace(r.DonorID); r.DonorID != "" {
		donorID, err := id.ParseDonorID(r.DonorID)
		if err != nil {
			return err
		}
		r.parsedDonorID = &donorID
	}

	return nil
}

// ParsedDonorID returns the validated donor ID, nil for anonymous checks.
func (r *ScreenRequest) ParsedDonorID() *id.DonorID {
	return r.parsedDonorID
}

// Questionnaire converts the validated request into the domain type.
func (r *ScreenRequest) Questionnaire() screening.Questionnaire {
	return screening.Questionnaire{
		Age:        *r.Age,
		WeightKg:   *r.WeightKg,
		Hemoglobin: *r.Hemoglobin,
		Flags: screening.RiskFlags{
			RecentIllness:  r.RecentIllness,
			Medication:     r.Medication,
			Alcohol24h:     r.Alcohol24h,
			Smoking:        r.Smoking,
			Tattoo6m:       r.Tattoo6m,
			Surgery6m:      r.Surgery6m,
			ChronicDisease: r.ChronicDisease,
			Pregnant:       r.Pregnant,
			CovidRecent:    r.CovidRecent,
			TravelMalaria:  r.TravelMalaria,

			HighBloodPressure: r.HighBloodPressure,
			Diabetes:          r.Diabetes,
			HeartDisease:      r.HeartDisease,
			IronDeficiency:    r.IronDeficiency,
			InfectiousDisease: r.InfectiousDisease,
			RecentDental:      r.RecentDental,
			RecentVaccination: r.RecentVaccination,
			RecentPiercing:    r.RecentPiercing,
		},
	}
}
