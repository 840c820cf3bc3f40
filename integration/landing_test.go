package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akeren/seam-landing/config"
	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/domain"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/internal/models"
	"github.com/akeren/seam-landing/web"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const adminToken = "integration-token"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type LandingTestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	client    *http.Client
	appConfig *config.ApplicationConfig
}

func (suite *LandingTestSuite) SetupSuite() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(models.ModelRegistry...))

	appLogger := log.NewNopLogger()
	suite.appConfig = &config.ApplicationConfig{
		DB:     suite.db,
		Logger: appLogger,
		Config: &config.AppConfig{
			Timezone:   time.UTC,
			AdminToken: adminToken,
		},
	}

	suite.appConfig.RouterService = router.CreateRouterService(appLogger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	templ, err := web.Templates()
	suite.Require().NoError(err)
	suite.appConfig.RouterService.SetHTMLTemplate(templ)

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
}

func (suite *LandingTestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	config.CloseDatabase(suite.db, log.NewNopLogger())
}

func (suite *LandingTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlist_entries")
	suite.db.Exec("DELETE FROM daily_visits")

	jar, err := cookiejar.New(nil)
	suite.Require().NoError(err)
	suite.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (suite *LandingTestSuite) do(method, path string, body io.Reader, header http.Header) (*http.Response, string) {
	req, err := http.NewRequest(method, suite.server.URL+path, body)
	suite.Require().NoError(err)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := suite.client.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	return resp, string(raw)
}

func (suite *LandingTestSuite) admin(method, path string, body any) (*http.Response, envelope) {
	header := http.Header{"Authorization": {"Bearer " + adminToken}}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
		header.Set("Content-Type", "application/json")
	}

	resp, raw := suite.do(method, path, reader, header)
	var env envelope
	suite.Require().NoError(json.Unmarshal([]byte(raw), &env), raw)
	return resp, env
}

func (suite *LandingTestSuite) submit(email, category string) (*http.Response, string) {
	form := url.Values{"email": {email}, "what_mostly_share": {category}}
	return suite.do(http.MethodPost, "/", strings.NewReader(form.Encode()), http.Header{
		"Content-Type": {"application/x-www-form-urlencoded"},
	})
}

func (suite *LandingTestSuite) TestHealthCheck() {
	resp, env := suite.admin(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(env.Message, "health check completed")

	var status map[string]int
	suite.Require().NoError(json.Unmarshal(env.Data, &status))
	suite.Equal(1, status["database"])
	suite.Contains(status, "uptime")
}

func (suite *LandingTestSuite) TestSignupFlow() {
	resp, body := suite.do(http.MethodGet, "/", nil, nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(body, "Join the waitlist")

	resp, _ = suite.submit("Grace@Example.com", "research")
	suite.Equal(http.StatusSeeOther, resp.StatusCode)
	suite.Equal("/#waitlist", resp.Header.Get("Location"))

	resp, body = suite.do(http.MethodGet, "/", nil, nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(body, "added to the waitlist")

	_, body = suite.do(http.MethodGet, "/", nil, nil)
	suite.NotContains(body, "added to the waitlist")

	resp, body = suite.submit("grace@example.com", "")
	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Contains(body, "already on the waitlist")

	var count int64
	suite.Require().NoError(suite.db.Model(&models.WaitlistEntry{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	_, env := suite.admin(http.MethodGet, "/v1/admin/visits/summary", nil)
	var summary map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &summary))
	suite.Equal(float64(5), summary["today_count"])
	suite.Equal(float64(1), summary["days_counted"])
}

func (suite *LandingTestSuite) TestPrivacyPage() {
	resp, body := suite.do(http.MethodGet, "/privacy/", nil, nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(body, "Privacy Policy")

	resp, _ = suite.do(http.MethodGet, "/privacy", nil, nil)
	suite.Equal(http.StatusMovedPermanently, resp.StatusCode)
}

func (suite *LandingTestSuite) TestAdminRequiresToken() {
	resp, _ := suite.do(http.MethodGet, "/v1/admin/waitlist", nil, nil)
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, _ = suite.do(http.MethodGet, "/v1/admin/visits", nil, http.Header{"Authorization": {"Bearer wrong"}})
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (suite *LandingTestSuite) TestAdminWaitlistLifecycle() {
	resp, env := suite.admin(http.MethodPost, "/v1/admin/waitlist", map[string]string{"email": "ops@example.com", "what_mostly_share": "notes"})
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &created))
	suite.Equal("ops@example.com", created.Email)

	_, _ = suite.submit("reader@example.com", "")

	resp, env = suite.admin(http.MethodGet, "/v1/admin/waitlist?category=notes", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	var page struct {
		Entries []map[string]any `json:"entries"`
		Total   int64            `json:"total"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &page))
	suite.Equal(int64(1), page.Total)
	suite.Equal("Notes", page.Entries[0]["category_label"])

	resp, env = suite.admin(http.MethodGet, "/v1/admin/waitlist/summary", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	var summary struct {
		Total      int64            `json:"total"`
		ByCategory map[string]int64 `json:"by_category"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &summary))
	suite.Equal(int64(2), summary.Total)
	suite.Equal(int64(1), summary.ByCategory["unspecified"])

	resp, _ = suite.admin(http.MethodPost, "/v1/admin/waitlist", map[string]string{"email": "OPS@example.com"})
	suite.Equal(http.StatusConflict, resp.StatusCode)

	resp, _ = suite.admin(http.MethodDelete, "/v1/admin/waitlist/"+jsonID(created.ID), nil)
	suite.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = suite.admin(http.MethodGet, "/v1/admin/waitlist/"+jsonID(created.ID), nil)
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func jsonID(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

func TestLandingSuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(LandingTestSuite))
}
