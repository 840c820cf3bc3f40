package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/gin-gonic/gin"
)

const corsAllowedHeaders = "Content-Type, Content-Length, Accept, Authorization, Cache-Control, X-Correlation-ID, X-Requested-With"

// abortWithError answers browsers with the error page and everyone else
// with the JSON envelope.
func (routerService *RouterService) abortWithError(c *gin.Context, status int, title, message string, data any) {
	if routerService.wantsHTML(c) {
		c.HTML(status, ErrorTemplate, gin.H{"Title": title, "Message": message})
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, ErrorResult(status, message, data).ToJSON())
}

// requestContextMiddleware tags the request with a correlation ID and puts
// a logger carrying it into the request context.
func (routerService *RouterService) requestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Correlation-ID"))
		if id == "" {
			id = log.GenerateCorrelationID()
		}
		c.Header("X-Correlation-ID", id)

		ctx := context.WithValue(c.Request.Context(), log.CorrelatedIDKey, id)
		ctx = log.ContextWithLogger(ctx, routerService.logger.WithCorrelationID(ctx))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (routerService *RouterService) requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		GetLogger(c).Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

func (routerService *RouterService) securityHeadersMiddleware() gin.HandlerFunc {
	settings := routerService.settings

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")

		// HSTS only over HTTPS, either direct or terminated at a proxy.
		if settings.hstsEnabled && isHTTPS(c) {
			h.Set("Strict-Transport-Security", settings.hstsValue)
		}
		c.Next()
	}
}

func isHTTPS(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")), "https")
}

func (routerService *RouterService) maxBodySizeMiddleware() gin.HandlerFunc {
	maxBytes := routerService.settings.maxBodyBytes

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			routerService.abortWithError(c, http.StatusRequestEntityTooLarge,
				"Request too large", "Request payload too large", nil)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// corsMiddleware only matters for the admin API; the pages are same-origin.
// Disallowed origins get no CORS headers, which the browser treats as a denial.
func (routerService *RouterService) corsMiddleware() gin.HandlerFunc {
	settings := routerService.settings

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if !settings.originAllowed(origin) {
			GetLogger(c).Warn("CORS origin not allowed", "origin", origin)
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// timeoutMiddleware puts a deadline on the request context. Gin's Context is
// not goroutine-safe, so the chain runs inline and a late handler is only
// answered with 408 when it wrote nothing. The http.Server timeouts cap the
// rest.
func (routerService *RouterService) timeoutMiddleware() gin.HandlerFunc {
	timeout := routerService.requestTimeout

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			GetLogger(c).Warn("Request timeout detected", "timeout", timeout)
			routerService.abortWithError(c, http.StatusRequestTimeout,
				"Request timed out", "Request timeout", nil)
		}
	}
}
