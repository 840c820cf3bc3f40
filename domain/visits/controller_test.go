package visits

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/internal/log"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func serveAdmin(t *testing.T, service VisitService, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rs := router.CreateRouterService(log.NewNopLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewVisitsAdminController(service, router.BearerTokenMiddleware("token")))

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestVisitsAdminController(t *testing.T) {
	service := NewMockVisitService(gomock.NewController(t))

	t.Run("list", func(t *testing.T) {
		service.EXPECT().
			ListVisits(gomock.Any(), &ListVisitsQuery{From: "2024-06-01"}).
			Return([]DailyVisitResponse{{ID: 1, VisitDate: "2024-06-01", VisitCount: 3}}, nil)

		w := serveAdmin(t, service, http.MethodGet, "/v1/admin/visits?from=2024-06-01")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data []DailyVisitResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(3), body.Data[0].VisitCount)
	})

	t.Run("summary", func(t *testing.T) {
		service.EXPECT().Summary(gomock.Any()).Return(&VisitSummary{TotalVisits: 3}, nil)
		assert.Equal(t, http.StatusOK, serveAdmin(t, service, http.MethodGet, "/v1/admin/visits/summary").Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		service.EXPECT().Summary(gomock.Any()).Return(nil, apperrors.NewDatabaseError("unable to summarize visits", nil))

		w := serveAdmin(t, service, http.MethodGet, "/v1/admin/visits/summary")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "unable to summarize visits")
	})

	t.Run("delete", func(t *testing.T) {
		service.EXPECT().DeleteRecord(gomock.Any(), uint(4)).Return(apperrors.NewNotFoundError("visit record not found", nil))
		assert.Equal(t, http.StatusNotFound, serveAdmin(t, service, http.MethodDelete, "/v1/admin/visits/4").Code)
	})
}
