package router

import (
	"net/http"
	"strconv"

	"github.com/akeren/seam-landing/internal/log"
)

// GetLogger returns the correlated logger the request middleware stored in
// the context, or a fresh JSON logger outside of a routed request.
func GetLogger(ctx *RequestContext) *log.Logger {
	if l, ok := ctx.Request.Context().Value(log.LoggerKeyForContext).(*log.Logger); ok && l != nil {
		return l
	}
	return log.NewLoggerWithJSONOutput().WithCorrelationID(ctx.Request.Context())
}

func OKResult(data any, message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusOK, Data: data, Message: message}
}

func CreatedResult(data any, resourceName string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusCreated, Data: data, Message: resourceName + " created successfully"}
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusBadRequest, Data: payload, Message: message}
}

func UnauthorizedResult(message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusUnauthorized, Message: message}
}

func ForbiddenResult(message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusForbidden, Message: message}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusNotFound, Message: message}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusInternalServerError, Message: message}
}

// ErrorResult carries per-field errors in Data, as the admin API reports
// validation and duplicate failures.
func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{StatusCode: statusCode, Data: data, Message: message}
}

// ParseIDParam reads a positive record ID from the path.
func ParseIDParam(ctx *RequestContext, paramName string) (uint, *ServiceResult) {
	raw := ctx.Param(paramName)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		GetLogger(ctx).Warn("Invalid ID parameter", "param", paramName, "value", raw)
		return 0, BadRequestResult("ID must be a positive integer", nil)
	}

	return uint(id), nil
}
