package handler

import (
	"time"

	"lifeline/internal/bloodrequest"
)

// RequestResponse is the HTTP representation of a blood request.
type RequestResponse struct {
	ID           string    `json:"id"`
	PatientName  string    `json:"patient_name"`
	HospitalName string    `json:"hospital_name"`
	BloodGroup   string    `json:"blood_group"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	Location     string    `json:"location,omitempty"`
	Contact      string    `json:"contact"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Urgent       bool      `json:"urgent"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListResponse is the HTTP response for GET /blood-requests.
type ListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// FromRequest converts a domain request to an HTTP response.
func FromRequest(r *bloodrequest.Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID.String(),
		PatientName:  r.PatientName,
		HospitalName: r.HospitalName,
		BloodGroup:   string(r.BloodGroup),
		State:        r.State,
		District:     r.District,
		Location:     r.Location,
		Contact:      r.Contact,
		Age:          r.Age,
		Gender:       r.Gender,
		Urgent:       r.Urgent,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

// FromRequests converts the request board to an HTTP response.
func FromRequests(requests []*bloodrequest.Request) ListResponse {
	out := ListResponse{Requests: make([]RequestResponse, 0, len(requests))}
	for _, r := range requests {
		out.Requests = append(out.Requests, FromRequest(r))
	}
	return out
}
