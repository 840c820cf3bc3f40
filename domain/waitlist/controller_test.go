package waitlist

import (
	"bytes"
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

const testAdminToken = "s3cret"

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newAdminRouter(t *testing.T, service WaitlistService, token string) *router.RouterService {
	t.Helper()

	rs := router.CreateRouterService(log.NewNopLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewWaitlistAdminController(service, router.BearerTokenMiddleware(token)))
	return rs
}

func doAdmin(rs *router.RouterService, method, path string, body []byte) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAdminController_RequiresToken(t *testing.T) {
	service := NewMockWaitlistService(gomock.NewController(t))

	t.Run("disabled without configured token", func(t *testing.T) {
		rs := newAdminRouter(t, service, "")
		w, _ := doAdmin(rs, http.MethodGet, "/v1/admin/waitlist", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		rs := newAdminRouter(t, service, "other")
		w, _ := doAdmin(rs, http.MethodGet, "/v1/admin/waitlist", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminController_List(t *testing.T) {
	service := NewMockWaitlistService(gomock.NewController(t))
	rs := newAdminRouter(t, service, testAdminToken)

	service.EXPECT().
		ListEntries(gomock.Any(), &ListEntriesQuery{Category: "ideas", Limit: 10}).
		Return(&WaitlistPage{Entries: []WaitlistEntryResponse{{ID: 1, Email: "a@b.co"}}, Total: 1, Limit: 10}, nil)

	w, env := doAdmin(rs, http.MethodGet, "/v1/admin/waitlist?category=ideas&limit=10", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page WaitlistPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "a@b.co", page.Entries[0].Email)
}

func TestAdminController_SummaryIsNotAnID(t *testing.T) {
	service := NewMockWaitlistService(gomock.NewController(t))
	rs := newAdminRouter(t, service, testAdminToken)

	service.EXPECT().Summary(gomock.Any()).Return(&WaitlistSummary{Total: 2}, nil)

	w, _ := doAdmin(rs, http.MethodGet, "/v1/admin/waitlist/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminController_Create(t *testing.T) {
	service := NewMockWaitlistService(gomock.NewController(t))
	rs := newAdminRouter(t, service, testAdminToken)

	t.Run("created", func(t *testing.T) {
		service.EXPECT().
			SignUp(gomock.Any(), &SignupRequest{Email: "a@b.co", Category: "notes"}).
			Return(&WaitlistEntryResponse{ID: 4, Email: "a@b.co"}, nil)

		w, env := doAdmin(rs, http.MethodPost, "/v1/admin/waitlist", []byte(`{"email":"a@b.co","what_mostly_share":"notes"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Waitlist entry created successfully", env.Message)
	})

	t.Run("duplicate carries field errors", func(t *testing.T) {
		service.EXPECT().
			SignUp(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewConflictError("waitlist entry with this email already exists", nil).WithField("email", duplicateEmailMessage))

		w, env := doAdmin(rs, http.MethodPost, "/v1/admin/waitlist", []byte(`{"email":"a@b.co"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		var fields []apperrors.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(env.Data, &fields))
		assert.Equal(t, "email", fields[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		w, _ := doAdmin(rs, http.MethodPost, "/v1/admin/waitlist", []byte(`{"email":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminController_GetAndDelete(t *testing.T) {
	service := NewMockWaitlistService(gomock.NewController(t))
	rs := newAdminRouter(t, service, testAdminToken)

	service.EXPECT().FindEntryByID(gomock.Any(), uint(9)).Return(nil, apperrors.NewNotFoundError("waitlist entry not found", nil))
	w, _ := doAdmin(rs, http.MethodGet, "/v1/admin/waitlist/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doAdmin(rs, http.MethodGet, "/v1/admin/waitlist/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	service.EXPECT().DeleteEntry(gomock.Any(), uint(9)).Return(nil)
	w, _ = doAdmin(rs, http.MethodDelete, "/v1/admin/waitlist/9", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
