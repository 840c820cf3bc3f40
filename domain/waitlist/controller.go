package waitlist

import (
	"github.com/akeren/seam-landing/config/router"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
)

// NewWaitlistAdminController mounts the operator API under /v1/admin/waitlist.
// auth guards every route.
func NewWaitlistAdminController(service WaitlistService, auth router.MiddlewareFunc) *router.RESTController {
	return router.NewVersionedRESTController(
		"WaitlistAdminController",
		"v1",
		"/admin/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "", listWaitlistEntriesHandler(service), auth)
			rs.AddGetHandler(c, nil, "summary", waitlistSummaryHandler(service), auth)
			rs.AddGetHandler(c, nil, "/:id", getWaitlistEntryHandler(service), auth)
			rs.AddPostHandler(c, nil, "", createWaitlistEntryHandler(service), auth)
			rs.AddDeleteHandler(c, nil, "/:id", deleteWaitlistEntryHandler(service), auth)
		},
	)
}

func errorResult(err error) *router.ServiceResult {
	return router.ErrorResult(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err),
		apperrors.GetFieldErrors(err),
	)
}

func createWaitlistEntryHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SignupRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.SignUp(ctx.Request.Context(), &req)
		if err != nil {
			return errorResult(err)
		}

		return router.CreatedResult(response, "Waitlist entry")
	}
}

func getWaitlistEntryHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		response, err := service.FindEntryByID(ctx.Request.Context(), id)
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(response, "Waitlist entry retrieved successfully")
	}
}

func listWaitlistEntriesHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var query ListEntriesQuery

		if err := ctx.ShouldBindQuery(&query); err != nil {
			router.GetLogger(ctx).Warn("Failed to bind query", "error", err)
			return router.BadRequestResult("Invalid query parameters", nil)
		}

		page, err := service.ListEntries(ctx.Request.Context(), &query)
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(page, "Waitlist entries retrieved successfully")
	}
}

func waitlistSummaryHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		summary, err := service.Summary(ctx.Request.Context())
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(summary, "Waitlist summary retrieved successfully")
	}
}

func deleteWaitlistEntryHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		if err := service.DeleteEntry(ctx.Request.Context(), id); err != nil {
			return errorResult(err)
		}

		return router.OKResult(nil, "Waitlist entry deleted successfully")
	}
}
