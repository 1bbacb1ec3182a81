package handler

import (
	"strings"

	"lifeline/internal/bloodrequest"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
)

// SubmitRequest is the HTTP request body for POST /blood-requests.
type SubmitRequest struct {
	PatientName  string `json:"patient_name"`
	HospitalName string `json:"hospital_name"`
	BloodGroup   string `json:"blood_group"`
	State        string `json:"state"`
	District     string `json:"district"`
	Location     string `json:"location,omitempty"`
	Contact      string `json:"contact"`
	Age          *int   `json:"age"`
	Gender       string `json:"gender"`
	Urgent       bool   `json:"urgent"`

	// Parsed value (populated by Validate)
	parsedBloodGroup id.BloodGroup
}

// Validate checks required fields. All problems are reported in one
// aggregated error so the requester can fix the whole submission in a
// single pass. Implements the Validatable interface for
// httputil.DecodeAndPrepare.
func (r *SubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.PatientName = strings.TrimSpace(r.PatientName)
	r.HospitalName = strings.TrimSpace(r.HospitalName)
	r.State = strings.TrimSpace(r.State)
	r.District = strings.TrimSpace(r.District)
	r.Location = strings.TrimSpace(r.Location)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Gender = strings.TrimSpace(r.Gender)

	var problems []string
	if r.PatientName == "" {
		problems = append(problems, "patient_name is required")
	}
	if r.HospitalName == "" {
		problems = append(problems, "hospital_name is required")
	}
	if r.State == "" {
		problems = append(problems, "state is required")
	}
	if r.District == "" {
		problems = append(problems, "district is required")
	}
	if r.Contact == "" {
		problems = append(problems, "contact is required")
	}
	if r.Age == nil {
		problems = append(problems, "age is required")
	} else if *r.Age <= 0 {
		problems = append(problems, "age must be positive")
	}
	if r.Gender == "" {
		problems = append(problems, "gender is required")
	}

	bloodGroup, err := id.ParseBloodGroup(r.BloodGroup)
	if err != nil {
		problems = append(problems, "blood_group must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	} else {
		r.parsedBloodGroup = bloodGroup
	}

	if len(problems) > 0 {
		return dErrors.New(dErrors.CodeValidation, strings.Join(problems, "; "))
	}
	return nil
}

// Request converts the validated submission into the domain type.
func (r *SubmitRequest) Request() *bloodrequest.Request {
	return &bloodrequest.Request{
		PatientName:  r.PatientName,
		HospitalName: r.HospitalName,
		BloodGroup:   r.parsedBloodGroup,
		State:        r.State,
		District:     r.District,
		Location:     r.Location,
		Contact:      r.Contact,
		Age:          *r.Age,
		Gender:       r.Gender,
		Urgent:       r.Urgent,
	}
}
