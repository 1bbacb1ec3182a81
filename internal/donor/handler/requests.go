package handler

import (
	"strings"

	"lifeline/internal/donor"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
)

// DonorRequest is the HTTP request body for POST /donors and
// PUT /donors/{donorID}.
type DonorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Age        *int   `json:"age"`
	Gender     string `json:"gender"`
	BloodGroup string `json:"blood_group"`
	State      string `json:"state"`
	District   string `json:"district"`
	Location   string `json:"location,omitempty"`
	Available  *bool  `json:"available,omitempty"`

	// Parsed value (populated by Validate)
	parsedBloodGroup id.BloodGroup
}

// Validate checks required fields. All problems are reported in one
// aggregated error so the client can fix the whole submission in a single
// pass. Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *DonorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Gender = strings.TrimSpace(r.Gender)
	r.State = strings.TrimSpace(r.State)
	r.District = strings.TrimSpace(r.District)
	r.Location = strings.TrimSpace(r.Location)

	var problems []string
	if r.Name == "" {
		problems = append(problems, "name is required")
	}
	if r.Email == "" {
		problems = append(problems, "email is required")
	} else if !strings.Contains(r.Email, "@") {
		problems = append(problems, "email is malformed")
	}
	if r.Phone == "" {
		problems = append(problems, "phone is required")
	}
	if r.Age == nil {
		problems = append(problems, "age is required")
	} else if *r.Age <= 0 {
		problems = append(problems, "age must be positive")
	}
	if r.Gender == "" {
		problems = append(problems, "gender is required")
	}
	if r.State == "" {
		problems = append(problems, "state is required")
	}
	if r.District == "" {
		problems = append(problems, "district is required")
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

// Donor converts the validated request into the domain type. New donors
// default to available unless the request says otherwise.
func (r *DonorRequest) Donor() *donor.Donor {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &donor.Donor{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Age:        *r.Age,
		Gender:     r.Gender,
		BloodGroup: r.parsedBloodGroup,
		State:      r.State,
		District:   r.District,
		Location:   r.Location,
		Available:  available,
	}
}
