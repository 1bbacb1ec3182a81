package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifeline/internal/stock"
	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/httputil"
	"lifeline/pkg/requestcontext"
)

// Service defines the interface for blood stock operations.
type Service interface {
	Upsert(ctx context.Context, row *stock.Stock) (*stock.Stock, error)
	ListByHospital(ctx context.Context, hospitalID id.HospitalID) ([]*stock.Stock, error)
	LiveView(ctx context.Context) ([]*stock.Stock, error)
	Delete(ctx context.Context, hospitalID id.HospitalID, group id.BloodGroup) error
}

// Handler wires blood stock endpoints to the stock service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a stock handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts stock endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Put("/hospitals/{hospitalID}/stocks", h.HandleUpsert)
	r.Get("/hospitals/{hospitalID}/stocks", h.HandleList)
	r.Delete("/hospitals/{hospitalID}/stocks/{bloodGroup}", h.HandleDelete)
	r.Get("/stocks/live", h.HandleLiveView)
}

// HandleUpsert handles PUT /hospitals/{hospitalID}/stocks requests.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpsertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	row, err := h.service.Upsert(ctx, &stock.Stock{
		HospitalID: hospitalID,
		BloodGroup: req.ParsedBloodGroup(),
		Units:      *req.Units,
		ExpiresOn:  req.ParsedExpiresOn(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "stock upsert failed",
			"request_id", requestID,
			"hospital_id", hospitalID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromStock(row))
}

// HandleList handles GET /hospitals/{hospitalID}/stocks requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := h.service.ListByHospital(ctx, hospitalID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromStocks(rows))
}

// HandleDelete handles DELETE /hospitals/{hospitalID}/stocks/{bloodGroup}
// requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hospitalID, err := id.ParseHospitalID(chi.URLParam(r, "hospitalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	group, err := id.ParseBloodGroup(chi.URLParam(r, "bloodGroup"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, hospitalID, group); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleLiveView handles GET /stocks/live requests.
func (h *Handler) HandleLiveView(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.LiveView(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromStocks(rows))
}
