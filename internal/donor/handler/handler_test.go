package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lifeline/internal/donor"
	"lifeline/internal/donor/handler/mocks"
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
		"name":        "Asha",
		"email":       "asha@example.com",
		"phone":       "555-0100",
		"age":         30,
		"gender":      "F",
		"blood_group": "O+",
		"state":       "Kerala",
		"district":    "Kochi",
	}
}

func TestHandleRegister(t *testing.T) {
	t.Run("creates donor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		donorID := id.NewDonorID()
		service.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, d *donor.Donor) (*donor.Donor, error) {
				d.ID = donorID
				return d, nil
			})

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors", validBody()))

		require.Equal(t, http.StatusCreated, w.Code)
		var resp DonorResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.Equal(t, donorID.String(), resp.ID)
		assert.Equal(t, "O+", resp.BloodGroup)
		assert.True(t, resp.Available)
	})

	t.Run("missing fields yield one aggregated validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors", map[string]any{"name": "Asha"}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp map[string]string
		testutil.DecodeJSON(t, w, &resp)
		assert.Equal(t, string(dErrors.CodeValidation), resp["error"])
		assert.Contains(t, resp["error_description"], "email is required")
		assert.Contains(t, resp["error_description"], "blood_group must be one of")
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)
		service.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "email is already registered"))

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPost, "/donors", validBody()))

		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandleSearch(t *testing.T) {
	t.Run("passes parsed criteria to the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		group := id.BloodGroupABNeg
		service.EXPECT().
			Search(gomock.Any(), donor.SearchCriteria{BloodGroup: &group, State: "Kerala"}).
			Return([]*donor.Donor{{ID: id.NewDonorID(), Name: "Asha", BloodGroup: group}}, nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/search?blood_group=ab-&state=Kerala"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp SearchResponse
		testutil.DecodeJSON(t, w, &resp)
		require.Len(t, resp.Donors, 1)
		assert.Equal(t, "AB-", resp.Donors[0].BloodGroup)
	})

	t.Run("invalid blood group rejected before service call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/search?blood_group=X%2B"))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("empty criteria maps to bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)
		service.EXPECT().
			Search(gomock.Any(), donor.SearchCriteria{}).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "at least one search criterion is required"))

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/search"))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	donorID := id.NewDonorID()
	service.EXPECT().
		Get(gomock.Any(), donorID).
		Return(&donor.Donor{ID: donorID, Name: "Asha", BloodGroup: id.BloodGroupOPos}, nil)

	w := httptest.NewRecorder()
	newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/donors/"+donorID.String()))

	require.Equal(t, http.StatusOK, w.Code)
	var resp DonorResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "Asha", resp.Name)
}

func TestHandleUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	donorID := id.NewDonorID()
	service.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, d *donor.Donor) (*donor.Donor, error) {
			require.Equal(t, donorID, d.ID)
			return d, nil
		})

	body := validBody()
	body["available"] = false

	w := httptest.NewRecorder()
	newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPut, "/donors/"+donorID.String(), body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp DonorResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.False(t, resp.Available)
}
