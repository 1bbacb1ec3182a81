package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lifeline/internal/stock"
	"lifeline/internal/stock/handler/mocks"
	id "lifeline/pkg/domain"
	"lifeline/pkg/testutil"
)

func newRouter(service Service) http.Handler {
	h := New(service, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestHandleUpsert(t *testing.T) {
	t.Run("upserts stock row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		hospitalID := id.NewHospitalID()
		service.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, row *stock.Stock) (*stock.Stock, error) {
				require.Equal(t, hospitalID, row.HospitalID)
				require.Equal(t, id.BloodGroupOPos, row.BloodGroup)
				require.Equal(t, 7, row.Units)
				row.UpdatedAt = time.Now().UTC()
				return row, nil
			})

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPut, "/hospitals/"+hospitalID.String()+"/stocks", map[string]any{
			"blood_group": "O+",
			"units":       7,
			"expires_on":  "2024-09-01",
		}))

		require.Equal(t, http.StatusOK, w.Code)
		var resp StockResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.Equal(t, 7, resp.Units)
		assert.Equal(t, "2024-09-01", resp.ExpiresOn)
	})

	t.Run("missing fields yield one aggregated validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		hospitalID := id.NewHospitalID()
		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewJSONRequest(t, http.MethodPut, "/hospitals/"+hospitalID.String()+"/stocks", map[string]any{}))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp map[string]string
		testutil.DecodeJSON(t, w, &resp)
		assert.Contains(t, resp["error_description"], "units is required")
		assert.Contains(t, resp["error_description"], "expires_on is required")
	})
}

func TestHandleLiveView(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	service.EXPECT().
		LiveView(gomock.Any()).
		Return([]*stock.Stock{
			{HospitalID: id.NewHospitalID(), BloodGroup: id.BloodGroupANeg, Units: 2, ExpiresOn: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
			{HospitalID: id.NewHospitalID(), BloodGroup: id.BloodGroupOPos, Units: 4, ExpiresOn: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)

	w := httptest.NewRecorder()
	newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodGet, "/stocks/live"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	testutil.DecodeJSON(t, w, &resp)
	require.Len(t, resp.Stocks, 2)
	assert.Equal(t, "A-", resp.Stocks[0].BloodGroup)
}

func TestHandleDelete(t *testing.T) {
	t.Run("deletes stock row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		hospitalID := id.NewHospitalID()
		service.EXPECT().
			Delete(gomock.Any(), hospitalID, id.BloodGroupABNeg).
			Return(nil)

		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodDelete, "/hospitals/"+hospitalID.String()+"/stocks/AB-"))

		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("invalid blood group is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockService(ctrl)

		hospitalID := id.NewHospitalID()
		w := httptest.NewRecorder()
		newRouter(service).ServeHTTP(w, testutil.NewRequest(t, http.MethodDelete, "/hospitals/"+hospitalID.String()+"/stocks/zz"))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
