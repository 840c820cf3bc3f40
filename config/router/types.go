package router

import (
	"github.com/gin-gonic/gin"
)

// ErrorTemplate is rendered for HTML clients on not-found and throttled requests.
const ErrorTemplate = "error.html"

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

// PageResult is what an HTML handler produces: either a rendered template
// or, when Location is set, a redirect.
type PageResult struct {
	StatusCode int
	Template   string
	Data       gin.H
	Location   string
}

type PageHandlerFunction func(*RequestContext) *PageResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	return gin.H{
		"code":    result.StatusCode,
		"data":    result.Data,
		"message": result.Message,
	}
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}

func (result *PageResult) IsRedirect() bool {
	return result.Location != ""
}
