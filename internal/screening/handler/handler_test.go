package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lifeline/internal/screening"
	"lifeline/internal/screening/handler/mocks"
	id "lifeline/pkg/domain"
	dErrors "lifeline/pkg/domain-errors"
	"lifeline/pkg/testutil"
)

func newRouter(service Service) http.Handler {
	h := New(service, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func validBody() map[string]any {
	return map[string]any{
		"age":              30,
		"weight_kg":        60.0,
		"hemoglobin_level": 13.0,
	}
}

func TestHandleScreen(t *testing.T) {
	t.Run("returns verdict for valid submission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		sc := &screening.Screening{
			ID:      uuid.New(),
			Verdict: screening.Verdict{Eligible: true, Reason: screening.ReasonAllChecksPassed},
		}
		service.EXPECT().
			Screen(gomock.Any(), gomock.Nil(), gomock.Any()).
			Return(sc, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/screenings", validBody()))

		require.Equal(t, http.StatusOK, w.Code)
		var resp ScreenResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.True(t, resp.Eligible)
		assert.Equal(t, "all_checks_passed", resp.Reason)
		assert.False(t, resp.Recorded)
	})

	t.Run("rejection still returns 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		sc := &screening.Screening{
			ID:      uuid.New(),
			DonorID: &donorID,
			Verdict: screening.Verdict{Eligible: false, Reason: screening.ReasonUnderweight},
		}
		service.EXPECT().
			Screen(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(sc, nil)

		body := validBody()
		body["donor_id"] = donorID.String()
		body["weight_kg"] = 49.9

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/screenings", body))

		require.Equal(t, http.StatusOK, w.Code)
		var resp ScreenResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.False(t, resp.Eligible)
		assert.Equal(t, "underweight", resp.Reason)
		assert.True(t, resp.Recorded)
	})

	t.Run("missing numerics yield one aggregated validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)
		// Service must not be called: validation failure is not a verdict.

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/screenings", map[string]any{"smoking": true}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp map[string]string
		testutil.DecodeJSON(t, w, &resp)
		assert.Equal(t, string(dErrors.CodeValidation), resp["error"])
		assert.Contains(t, resp["error_description"], "age is required")
		assert.Contains(t, resp["error_description"], "weight_kg is required")
		assert.Contains(t, resp["error_description"], "hemoglobin_level is required")
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequestWithBody(t, http.MethodPost, "/screenings", "{not json"))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid donor id rejected before service call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		body := validBody()
		body["donor_id"] = "not-a-uuid"

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/screenings", body))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("service failure maps to internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)
		service.EXPECT().
			Screen(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInternal, "failed to record screening"))

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/screenings", validBody()))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleHistory(t *testing.T) {
	t.Run("returns donor history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		service.EXPECT().
			History(gomock.Any(), donorID).
			Return([]*screening.Screening{
				{ID: uuid.New(), DonorID: &donorID, Verdict: screening.Verdict{Eligible: true, Reason: screening.ReasonAllChecksPassed}},
			}, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/"+donorID.String()+"/screenings"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp HistoryResponse
		testutil.DecodeJSON(t, w, &resp)
		require.Len(t, resp.Screenings, 1)
		assert.True(t, resp.Screenings[0].Recorded)
	})

	t.Run("invalid donor id is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/nope/screenings"))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
