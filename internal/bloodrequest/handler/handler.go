package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lifeline/internal/bloodrequest"
	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/httputil"
	"lifeline/pkg/requestcontext"
)

// Service defines the interface for blood request operations.
type Service interface {
	Submit(ctx context.Context, r *bloodrequest.Request) (*bloodrequest.Request, error)
	List(ctx context.Context, filter bloodrequest.Filter) ([]*bloodrequest.Request, error)
}

// Handler wires blood request endpoints to the blood request service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a blood request handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts blood request endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/blood-requests", h.HandleSubmit)
	r.Get("/blood-requests", h.HandleList)
}

// HandleSubmit handles POST /blood-requests requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Submit(ctx, req.Request())
	if err != nil {
		h.logger.ErrorContext(ctx, "blood request submission failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromRequest(created))
}

// HandleList handles GET /blood-requests requests. Filters come from query
// parameters: blood_group, state, district.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := bloodrequest.Filter{
		State:    strings.TrimSpace(r.URL.Query().Get("state")),
		District: strings.TrimSpace(r.URL.Query().Get("district")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("blood_group")); raw != "" {
		bloodGroup, err := id.ParseBloodGroup(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.BloodGroup = &bloodGroup
	}

	requests, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "blood request listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRequests(requests))
}
