package handler

import (
	"time"

	"lifeline/internal/donation"
)

// LedgerResponse is the HTTP response for POST /donors/{donorID}/donations
// and POST /donors/{donorID}/reconcile.
type LedgerResponse struct {
	DonorID          string `json:"donor_id"`
	TotalDonations   int    `json:"total_donations"`
	LastDonationDate string `json:"last_donation_date,omitempty"`
	Badge            string `json:"badge"`
	Repaired         *bool  `json:"repaired,omitempty"`
}

// StatusResponse is the HTTP response for GET /donors/{donorID}/status.
type StatusResponse struct {
	DonorID          string `json:"donor_id"`
	TotalDonations   int    `json:"total_donations"`
	Badge            string `json:"badge"`
	Eligible         bool   `json:"eligible"`
	NextEligibleDate string `json:"next_eligible_date,omitempty"`
	DaysLeft         int    `json:"days_left"`
}

// DonationResponse is one event in GET /donors/{donorID}/donations.
type DonationResponse struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Location   string    `json:"location,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HistoryResponse is the HTTP response for GET /donors/{donorID}/donations.
type HistoryResponse struct {
	Donations []DonationResponse `json:"donations"`
}

// FromLedger converts a domain ledger to an HTTP response.
func FromLedger(l *donation.Ledger) LedgerResponse {
	out := LedgerResponse{
		DonorID:        l.DonorID.String(),
		TotalDonations: l.TotalDonations,
		Badge:          string(l.Badge),
	}
	if l.LastDonationDate != nil {
		out.LastDonationDate = l.LastDonationDate.Format(time.DateOnly)
	}
	return out
}

// FromStatus converts a lifecycle status to an HTTP response.
func FromStatus(st *donation.Status) StatusResponse {
	out := StatusResponse{
		DonorID:        st.DonorID.String(),
		TotalDonations: st.TotalDonations,
		Badge:          string(st.Badge),
		Eligible:       st.Eligible,
		DaysLeft:       st.DaysLeft,
	}
	if st.NextEligibleDate != nil {
		out.NextEligibleDate = st.NextEligibleDate.Format(time.DateOnly)
	}
	return out
}

// FromDonations converts a donation history to an HTTP response.
func FromDonations(donations []*donation.Donation) HistoryResponse {
	out := HistoryResponse{Donations: make([]DonationResponse, 0, len(donations))}
	for _, d := range donations {
		out.Donations = append(out.Donations, DonationResponse{
			ID:         d.ID.String(),
			Date:       d.Date.Format(time.DateOnly),
			Location:   d.Location,
			RecordedAt: d.RecordedAt,
		})
	}
	return out
}
