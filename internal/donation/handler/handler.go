package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lifeline/internal/donation"
	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/httputil"
	"lifeline/pkg/requestcontext"
)

// Service defines the interface for donation lifecycle operations.
type Service interface {
	Record(ctx context.Context, donorID id.DonorID, date time.Time, location string) (*donation.Ledger, error)
	Status(ctx context.Context, donorID id.DonorID) (*donation.Status, error)
	History(ctx context.Context, donorID id.DonorID) ([]*donation.Donation, error)
	Reconcile(ctx context.Context, donorID id.DonorID) (*donation.Ledger, bool, error)
}

// Handler wires donation lifecycle endpoints to the donation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a donation handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts donation lifecycle endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/donors/{donorID}/donations", h.HandleRecord)
	r.Get("/donors/{donorID}/donations", h.HandleHistory)
	r.Get("/donors/{donorID}/status", h.HandleStatus)
	r.Post("/donors/{donorID}/reconcile", h.HandleReconcile)
}

// HandleRecord handles POST /donors/{donorID}/donations requests.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[RecordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ledger, err := h.service.Record(ctx, donorID, req.ParsedDate(), req.Location)
	if err != nil {
		h.logger.ErrorContext(ctx, "donation record failed",
			"request_id", requestID,
			"donor_id", donorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "donation handled",
		"request_id", requestID,
		"donor_id", donorID,
		"total_donations", ledger.TotalDonations,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromLedger(ledger))
}

// HandleHistory handles GET /donors/{donorID}/donations requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donations, err := h.service.History(ctx, donorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "donation history failed",
			"request_id", requestcontext.RequestID(ctx),
			"donor_id", donorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDonations(donations))
}

// HandleStatus handles GET /donors/{donorID}/status requests.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	status, err := h.service.Status(ctx, donorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "donor status failed",
			"request_id", requestcontext.RequestID(ctx),
			"donor_id", donorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromStatus(status))
}

// HandleReconcile handles POST /donors/{donorID}/reconcile requests.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ledger, repaired, err := h.service.Reconcile(ctx, donorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "ledger reconcile failed",
			"request_id", requestID,
			"donor_id", donorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromLedger(ledger)
	resp.Repaired = &repaired

	httputil.WriteJSON(w, http.StatusOK, resp)
}
