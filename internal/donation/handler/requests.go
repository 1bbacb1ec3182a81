package handler

import (
	"strings"
	"time"

	dErrors "lifeline/pkg/domain-errors"
)

// RecordRequest is the HTTP request body for POST /donors/{donorID}/donations.
// Date is optional and defaults to today when omitted.
type RecordRequest struct {
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`

	// Parsed value (populated by Validate)
	parsedDate time.Time
}

// Validate parses the optional date and trims the location.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Location = strings.TrimSpace(r.Location)

	if r.Date = strings.TrimSpace(r.Date); r.Date != "" {
		parsed, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "date must be formatted YYYY-MM-DD")
		}
		r.parsedDate = parsed
	}

	return nil
}

// ParsedDate returns the validated donation date, zero when omitted.
func (r *RecordRequest) ParsedDate() time.Time {
	return r.parsedDate
}
