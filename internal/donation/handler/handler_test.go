package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lifeline/internal/donation"
	"lifeline/internal/donation/handler/mocks"
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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHandleRecord(t *testing.T) {
	t.Run("records donation and returns updated ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		last := date(2024, time.June, 1)
		service.EXPECT().
			Record(gomock.Any(), donorID, last, "City Hospital").
			Return(&donation.Ledger{
				DonorID:          donorID,
				TotalDonations:   2,
				LastDonationDate: &last,
				Badge:            donation.BadgeRegularDonor,
			}, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors/"+donorID.String()+"/donations", map[string]any{
			"date":     "2024-06-01",
			"location": "City Hospital",
		}))

		require.Equal(t, http.StatusCreated, w.Code)
		var resp LedgerResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.Equal(t, 2, resp.TotalDonations)
		assert.Equal(t, "Regular Donor", resp.Badge)
		assert.Equal(t, "2024-06-01", resp.LastDonationDate)
	})

	t.Run("omitted date defaults to today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		service.EXPECT().
			Record(gomock.Any(), donorID, time.Time{}, "").
			Return(&donation.Ledger{DonorID: donorID, TotalDonations: 1, Badge: donation.BadgeNewDonor}, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors/"+donorID.String()+"/donations", map[string]any{}))

		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unparseable date is a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors/"+donorID.String()+"/donations", map[string]any{
			"date": "01/06/2024",
		}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid donor id rejected before body decode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors/nope/donations", map[string]any{}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("future date rejection maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)
		service.EXPECT().
			Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidInput, "donation date cannot be in the future"))

		donorID := id.NewDonorID()
		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors/"+donorID.String()+"/donations", map[string]any{
			"date": "2099-01-01",
		}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHandleStatus(t *testing.T) {
	t.Run("returns cooldown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		next := date(2024, time.March, 31)
		service.EXPECT().
			Status(gomock.Any(), donorID).
			Return(&donation.Status{
				DonorID:          donorID,
				TotalDonations:   3,
				Badge:            donation.BadgeRegularDonor,
				Eligible:         false,
				NextEligibleDate: &next,
				DaysLeft:         1,
			}, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/"+donorID.String()+"/status"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp StatusResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.False(t, resp.Eligible)
		assert.Equal(t, "2024-03-31", resp.NextEligibleDate)
		assert.Equal(t, 1, resp.DaysLeft)
	})

	t.Run("new donor has no next eligible date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		service.EXPECT().
			Status(gomock.Any(), donorID).
			Return(&donation.Status{DonorID: donorID, Badge: donation.BadgeNewDonor, Eligible: true}, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/"+donorID.String()+"/status"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp StatusResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.True(t, resp.Eligible)
		assert.Empty(t, resp.NextEligibleDate)
	})
}

func TestHandleDonationHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	donorID := id.NewDonorID()
	service.EXPECT().
		History(gomock.Any(), donorID).
		Return([]*donation.Donation{
			{ID: uuid.New(), DonorID: donorID, Date: date(2024, time.June, 1), Location: "City Hospital"},
			{ID: uuid.New(), DonorID: donorID, Date: date(2024, time.February, 1)},
		}, nil)

	w := httptest.NewRecorder()
	newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/"+donorID.String()+"/donations"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HistoryResponse
	testutil.DecodeJSON(t, w, &resp)
	require.Len(t, resp.Donations, 2)
	assert.Equal(t, "2024-06-01", resp.Donations[0].Date)
}

func TestHandleReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	donorID := id.NewDonorID()
	last := date(2024, time.January, 5)
	service.EXPECT().
		Reconcile(gomock.Any(), donorID).
		Return(&donation.Ledger{
			DonorID:          donorID,
			TotalDonations:   5,
			LastDonationDate: &last,
			Badge:            donation.BadgeLifeSaver,
		}, true, nil)

	w := httptest.NewRecorder()
	newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodPost, "/donors/"+donorID.String()+"/reconcile"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp LedgerResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, 5, resp.TotalDonations)
	assert.Equal(t, "Life Saver", resp.Badge)
	require.NotNil(t, resp.Repaired)
	assert.True(t, *resp.Repaired)
}
