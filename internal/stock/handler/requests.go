package handler

import (
	"strings"
	"time"

	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
)

// UpsertRequest is the HTTP request body for PUT /hospitals/{hospitalID}/stocks.
type UpsertRequest struct {
	BloodGroup string `json:"blood_group"`
	Units      *int   `json:"units"`
	ExpiresOn  string `json:"expires_on"`

	// Parsed values (populated by Validate)
	parsedBloodGroup id.BloodGroup
	parsedExpiresOn  time.Time
}

// Validate checks required fields and parses the expiry date.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpsertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	var problems []string

	bloodGroup, err := id.ParseBloodGroup(r.BloodGroup)
	if err != nil {
		problems = append(problems, "blood_group must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	} else {
		r.parsedBloodGroup = bloodGroup
	}

	if r.Units == nil {
		problems = append(problems, "units is required")
	} else if *r.Units < 0 {
		problems = append(problems, "units must not be negative")
	}

	if r.ExpiresOn = strings.TrimSpace(r.ExpiresOn); r.ExpiresOn == "" {
		problems = append(problems, "expires_on is required")
	} else {
		parsed, err := time.Parse(time.DateOnly, r.ExpiresOn)
		if err != nil {
			problems = append(problems, "expires_on must be formatted YYYY-MM-DD")
		} else {
			r.parsedExpiresOn = parsed
		}
	}

	if len(problems) > 0 {
		return dErrors.New(dErrors.CodeValidation, strings.Join(problems, "; "))
	}
	return nil
}

// ParsedBloodGroup returns the validated blood group.
func (r *UpsertRequest) ParsedBloodGroup() id.BloodGroup {
	return r.parsedBloodGroup
}

// ParsedExpiresOn returns the validated expiry date.
func (r *UpsertRequest) ParsedExpiresOn() time.Time {
	return r.parsedExpiresOn
}
