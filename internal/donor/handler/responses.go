package handler

import (
	"time"

	"lifeline/internal/donor"
)

// DonorResponse is the HTTP representation of a donor profile.
type DonorResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	BloodGroup string    `json:"blood_group"`
	State      string    `json:"state"`
	District   string    `json:"district"`
	Location   string    `json:"location,omitempty"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SearchResponse is the HTTP response for GET /donors/search.
type SearchResponse struct {
	Donors []DonorResponse `json:"donors"`
}

// FromDonor converts a domain donor to an HTTP response.
func FromDonor(d *donor.Donor) DonorResponse {
	return DonorResponse{
		ID:         d.ID.String(),
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Age:        d.Age,
		Gender:     d.Gender,
		BloodGroup: string(d.BloodGroup),
		State:      d.State,
		District:   d.District,
		Location:   d.Location,
		Available:  d.Available,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// FromDonors converts search results to an HTTP response.
func FromDonors(donors []*donor.Donor) SearchResponse {
	out := SearchResponse{Donors: make([]DonorResponse, 0, len(donors))}
	for _, d := range donors {
		out.Donors = append(out.Donors, FromDonor(d))
	}
	return out
}
