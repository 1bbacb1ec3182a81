package handler

import (
	"time"

	"lifeline/internal/stock"
)

// StockResponse is the HTTP representation of one stock row.
type StockResponse struct {
	HospitalID string    `json:"hospital_id"`
	BloodGroup string    `json:"blood_group"`
	Units      int       `json:"units"`
	ExpiresOn  string    `json:"expires_on"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListResponse is the HTTP response for stock listings.
type ListResponse struct {
	Stocks []StockResponse `json:"stocks"`
}

// FromStock converts a domain stock row to an HTTP response.
func FromStock(row *stock.Stock) StockResponse {
	return StockResponse{
		HospitalID: row.HospitalID.String(),
		BloodGroup: string(row.BloodGroup),
		Units:      row.Units,
		ExpiresOn:  row.ExpiresOn.Format(time.DateOnly),
		UpdatedAt:  row.UpdatedAt,
	}
}

// FromStocks converts stock rows to an HTTP response.
func FromStocks(rows []*stock.Stock) ListResponse {
	out := ListResponse{Stocks: make([]StockResponse, 0, len(rows))}
	for _, row := range rows {
		out.Stocks = append(out.Stocks, FromStock(row))
	}
	return out
}
