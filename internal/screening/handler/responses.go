package handler

import (
	"time"

	"lifeline/internal/screening"
)

// ScreenResponse is the HTTP response for POST /screenings.
type ScreenResponse struct {
	ID        string    `json:"id"`
	Eligible  bool      `json:"eligible"`
	Reason    string    `json:"reason"`
	Recorded  bool      `json:"recorded"`
	CheckedAt time.Time `json:"checked_at"`
}

// HistoryResponse is the HTTP response for GET /donors/{donorID}/screenings.
type HistoryResponse struct {
	Screenings []ScreenResponse `json:"screenings"`
}

// FromScreening converts a domain screening to an HTTP response.
func FromScreening(sc *screening.Screening) ScreenResponse {
	return ScreenResponse{
		ID:        sc.ID.String(),
		Eligible:  sc.Verdict.Eligible,
		Reason:    string(sc.Verdict.Reason),
		Recorded:  sc.DonorID != nil,
		CheckedAt: sc.CheckedAt,
	}
}

// FromScreenings converts a screening history to an HTTP response.
func FromScreenings(screenings []*screening.Screening) HistoryResponse {
	out := HistoryResponse{Screenings: make([]ScreenResponse, 0, len(screenings))}
	for _, sc := range screenings {
		out.Screenings = append(out.Screenings, FromScreening(sc))
	}
	return out
}
