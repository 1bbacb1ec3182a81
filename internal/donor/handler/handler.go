package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lifeline/internal/donor"
	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/httputil"
	"lifeline/pkg/requestcontext"
)

// Service defines the interface for donor directory operations.
type Service interface {
	Register(ctx context.Context, d *donor.Donor) (*donor.Donor, error)
	Get(ctx context.Context, donorID id.DonorID) (*donor.Donor, error)
	Update(ctx context.Context, d *donor.Donor) (*donor.Donor, error)
	Search(ctx context.Context, criteria donor.SearchCriteria) ([]*donor.Donor, error)
}

// Handler wires donor directory endpoints to the donor service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a donor handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts donor directory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/donors", h.HandleRegister)
	r.Get("/donors/search", h.HandleSearch)
	r.Get("/donors/{donorID}", h.HandleGet)
	r.Put("/donors/{donorID}", h.HandleUpdate)
}

// HandleRegister handles POST /donors requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DonorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.service.Register(ctx, req.Donor())
	if err != nil {
		h.logger.ErrorContext(ctx, "donor registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromDonor(d))
}

// HandleGet handles GET /donors/{donorID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	d, err := h.service.Get(ctx, donorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDonor(d))
}

// HandleUpdate handles PUT /donors/{donorID} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[DonorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d := req.Donor()
	d.ID = donorID

	updated, err := h.service.Update(ctx, d)
	if err != nil {
		h.logger.ErrorContext(ctx, "donor update failed",
			"request_id", requestID,
			"donor_id", donorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDonor(updated))
}

// HandleSearch handles GET /donors/search requests. Criteria come from
// query parameters: blood_group, state, district.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := donor.SearchCriteria{
		State:    strings.TrimSpace(r.URL.Query().Get("state")),
		District: strings.TrimSpace(r.URL.Query().Get("district")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("blood_group")); raw != "" {
		bloodGroup, err := id.ParseBloodGroup(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		criteria.BloodGroup = &bloodGroup
	}

	donors, err := h.service.Search(ctx, criteria)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDonors(donors))
}
