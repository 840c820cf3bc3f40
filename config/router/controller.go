package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akeren/seam-landing/pkg/ratelimit"
)

// normalizePath joins the controller mount point and the relative path.
// A trailing slash is kept only when the relative path asks for one, so
// "privacy/" stays canonical while "" and "items" do not grow one.
func normalizePath(controller *RESTController, relativePath string) string {
	var path string = controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	path = strings.ReplaceAll(path, "//", "/")

	keepSlash := strings.HasSuffix(relativePath, "/")
	if len(path) > 1 && path[len(path)-1] == '/' && !keepSlash {
		path = path[:len(path)-1]
	}

	return path
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return fmt.Sprintf("%s-%s", method, path)
}

func (controller *RESTController) bindHandlerToController(routerService *RouterService, path, method string) {
	key := routerService.keyForPathAndMethod(path, method)
	otherController, foundPrevious := routerService.handlerToControllerMap[key]

	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by a different controller '%s'", path, otherController.name))
	}

	routerService.handlerToControllerMap[key] = controller
}

// bindHandlerRateLimiter gives one route its own limiter. nil keeps the default.
func (routerService *RouterService) bindHandlerRateLimiter(path, method string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}

	key := routerService.keyForPathAndMethod(path, method)
	if _, foundPrevious := routerService.rateLimitOverrides[key]; foundPrevious {
		panic(fmt.Sprintf("A rate limiter is already registered for '%s'", key))
	}

	routerService.rateLimitOverrides[key] = limiter
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("A handler returned an undefined result. This typically indicates a bug in a handler's implementation.").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func createPageHandler(handler PageHandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			GetLogger(c).Error("A page handler returned an undefined result", "path", c.FullPath())
			c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
			return
		}

		if result.IsRedirect() {
			status := result.StatusCode
			if status == 0 {
				status = http.StatusSeeOther
			}
			c.Redirect(status, result.Location)
			return
		}

		status := result.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		c.HTML(status, result.Template, result.Data)
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		version:    "",
		prepare:    prepare,
	}
}

func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	// Prefixing the version to the mount point at controller creation clarifies routing and leaves no room for ambiguity.
	finalPath := strings.ReplaceAll("/"+version+"/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: finalPath,
		version:    version,
		prepare:    prepare,
	}
}

func (routerService *RouterService) register(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	path string,
	handler MiddlewareFunc,
	middlewares []MiddlewareFunc,
) {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint, method)
	routerService.bindHandlerRateLimiter(mountPoint, method, limiter)
	routerService.engine.Handle(method, mountPoint, append(middlewares, handler)...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint)
}

// AddPageHandler registers an HTML handler. Templates must have been
// installed with SetHTMLTemplate before the first request.
func (routerService *RouterService) AddPageHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	path string,
	handler PageHandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, method, path, createPageHandler(handler), middlewares)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodPost, path, createHandler(handler), middlewares)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodGet, path, createHandler(handler), middlewares)
}

func (routerService *RouterService) AddDeleteHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodDelete, path, createHandler(handler), middlewares)
}

func (routerService *RouterService) AddHeadHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodHead, path, createHandler(handler), middlewares)
}
