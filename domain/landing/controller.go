package landing

import (
	"net/http"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/domain/visits"
	"github.com/akeren/seam-landing/domain/waitlist"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/constants"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"github.com/akeren/seam-landing/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

const (
	landingTemplate = "landing.html"
	privacyTemplate = "privacy.html"
	errorTemplate   = router.ErrorTemplate

	privacyUpdatedOn = "January 2025"

	// flashSignupSucceeded is the cookie value; the message itself never
	// round-trips through the client.
	flashSignupSucceeded = "signup"
	flashMaxAgeSeconds   = 60
)

type Dependencies struct {
	Waitlist waitlist.WaitlistService
	Visits   visits.VisitService
	Logger   *log.Logger
	// SignupLimiter throttles POST / per client IP. nil uses the router default.
	SignupLimiter ratelimit.RateLimiter
	// StrictVisitCounter fails the request when the visit cannot be counted.
	StrictVisitCounter bool
	SecureCookies      bool
}

type landingController struct {
	deps Dependencies
}

type formValues struct {
	Email    string
	Category string
}

func NewLandingController(deps Dependencies) *router.RESTController {
	ctrl := &landingController{deps: deps}

	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPageHandler(c, nil, http.MethodGet, "", ctrl.showLanding)
			rs.AddPageHandler(c, deps.SignupLimiter, http.MethodPost, "", ctrl.submitSignup)
			rs.AddPageHandler(c, nil, http.MethodGet, "privacy/", ctrl.showPrivacy)

			// Every landing request is counted, throttled ones included.
			rs.BeforeRateLimit(c, http.MethodGet, "", ctrl.countVisit)
			rs.BeforeRateLimit(c, http.MethodPost, "", ctrl.countVisit)
		},
	)
}

// countVisit runs before the rate limiter. In strict mode a failed count
// ends the request with the error page.
func (ctrl *landingController) countVisit(c *router.RequestContext) {
	c.Header("Cache-Control", "no-store")

	_, err := ctrl.deps.Visits.RecordVisit(c.Request.Context())
	if err == nil {
		return
	}

	logger := log.GetLoggerInstanceFromContext(c.Request.Context(), ctrl.deps.Logger)
	if !ctrl.deps.StrictVisitCounter {
		logger.Warn("Visit not counted; serving page anyway", "error", err)
		return
	}

	logger.Error("Visit not counted; failing request", "error", err)
	page := serverErrorPage()
	c.HTML(page.StatusCode, page.Template, page.Data)
	c.Abort()
}

func (ctrl *landingController) showLanding(c *router.RequestContext) *router.PageResult {
	return landingPage(http.StatusOK, formValues{}, nil, "", ctrl.consumeFlash(c))
}

func (ctrl *landingController) submitSignup(c *router.RequestContext) *router.PageResult {
	logger := log.GetLoggerInstanceFromContext(c.Request.Context(), ctrl.deps.Logger)

	var req waitlist.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind signup form", "error", err)
		return landingPage(http.StatusBadRequest, formValues{}, nil, "Your submission could not be read. Please try again.", "")
	}

	_, err := ctrl.deps.Waitlist.SignUp(c.Request.Context(), &req)
	values := formValues{Email: req.Email, Category: req.Category}

	switch {
	case err == nil:
		ctrl.setFlash(c)
		return &router.PageResult{
			StatusCode: http.StatusSeeOther,
			Location:   "/#" + constants.WaitlistAnchor,
		}
	case apperrors.GetErrorType(err) == apperrors.ErrorTypeInvalidRequest,
		apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict:
		return landingPage(apperrors.HTTPStatusCode(err), values, fieldErrorMap(err), "", "")
	default:
		logger.Error("Waitlist signup failed", "error", err)
		return serverErrorPage()
	}
}

func (ctrl *landingController) showPrivacy(c *router.RequestContext) *router.PageResult {
	return &router.PageResult{
		StatusCode: http.StatusOK,
		Template:   privacyTemplate,
		Data: gin.H{
			"Title":     "Privacy Policy",
			"UpdatedOn": privacyUpdatedOn,
		},
	}
}

func (ctrl *landingController) setFlash(c *router.RequestContext) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.FlashCookieName, flashSignupSucceeded, flashMaxAgeSeconds, "/", "", ctrl.deps.SecureCookies, true)
}

// consumeFlash reads the one-shot notification and expires the cookie.
func (ctrl *landingController) consumeFlash(c *router.RequestContext) string {
	value, err := c.Cookie(constants.FlashCookieName)
	if err != nil || value == "" {
		return ""
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.FlashCookieName, "", -1, "/", "", ctrl.deps.SecureCookies, true)

	if value == flashSignupSucceeded {
		return constants.SignupSuccessMessage
	}
	return ""
}

func landingPage(status int, values formValues, errs map[string]string, formError, flash string) *router.PageResult {
	if errs == nil {
		errs = map[string]string{}
	}
	return &router.PageResult{
		StatusCode: status,
		Template:   landingTemplate,
		Data: gin.H{
			"Title":     "Join the waitlist",
			"Form":      values,
			"Errors":    errs,
			"FormError": formError,
			"Flash":     flash,
			"Choices":   waitlist.CategoryChoices(),
		},
	}
}

func serverErrorPage() *router.PageResult {
	return &router.PageResult{
		StatusCode: http.StatusInternalServerError,
		Template:   errorTemplate,
		Data: gin.H{
			"Title":   "Something went wrong",
			"Message": "We could not complete your request. Please try again in a moment.",
		},
	}
}

// fieldErrorMap keeps the first message per field.
func fieldErrorMap(err error) map[string]string {
	errs := map[string]string{}
	for _, f := range apperrors.GetFieldErrors(err) {
		if _, ok := errs[f.Field]; !ok {
			errs[f.Field] = f.Message
		}
	}
	return errs
}
