package visits

import (
	"github.com/akeren/seam-landing/config/router"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
)

// NewVisitsAdminController mounts the read/delete operator API under
// /v1/admin/visits. Counting itself only happens on landing requests.
func NewVisitsAdminController(service VisitService, auth router.MiddlewareFunc) *router.RESTController {
	return router.NewVersionedRESTController(
		"VisitsAdminController",
		"v1",
		"/admin/visits",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "", listVisitsHandler(service), auth)
			rs.AddGetHandler(c, nil, "summary", visitSummaryHandler(service), auth)
			rs.AddDeleteHandler(c, nil, "/:id", deleteVisitRecordHandler(service), auth)
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

func listVisitsHandler(service VisitService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var query ListVisitsQuery

		if err := ctx.ShouldBindQuery(&query); err != nil {
			router.GetLogger(ctx).Warn("Failed to bind query", "error", err)
			return router.BadRequestResult("Invalid query parameters", nil)
		}

		records, err := service.ListVisits(ctx.Request.Context(), &query)
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(records, "Visit records retrieved successfully")
	}
}

func visitSummaryHandler(service VisitService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		summary, err := service.Summary(ctx.Request.Context())
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(summary, "Visit summary retrieved successfully")
	}
}

func deleteVisitRecordHandler(service VisitService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		if err := service.DeleteRecord(ctx.Request.Context(), id); err != nil {
			return errorResult(err)
		}

		return router.OKResult(nil, "Visit record deleted successfully")
	}
}
