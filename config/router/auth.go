package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// BearerTokenMiddleware guards admin routes with a static token. An empty
// token disables the routes entirely (403) instead of leaving them open.
func BearerTokenMiddleware(token string) MiddlewareFunc {
	expected := []byte(strings.TrimSpace(token))

	return func(c *RequestContext) {
		if len(expected) == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, ForbiddenResult("Admin API is disabled").ToJSON())
			return
		}

		header := c.GetHeader("Authorization")
		provided, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), expected) != 1 {
			GetLogger(c).Warn("Rejected admin request", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.Header("WWW-Authenticate", `Bearer realm="admin"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedResult("Invalid or missing bearer token").ToJSON())
			return
		}

		c.Next()
	}
}
