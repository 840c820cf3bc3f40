package router

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/akeren/seam-landing/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

func (routerService *RouterService) initRateLimiting(requests int, window time.Duration) {
	redisClient := routerService.redisClient
	if redisClient != nil {
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			routerService.logger.Warn("Redis unreachable; rate limiting falls back to in-memory", "error", err)
			redisClient = nil
		}
	}

	routerService.rateLimiter = ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    redisClient,
		Logger:   routerService.logger,
	})

	backend := "in-memory"
	if redisClient != nil {
		backend = "redis"
	}
	routerService.logger.Info("Rate limiting initialized", "backend", backend, "requests", requests, "window", window)
}

// BeforeRateLimit runs hook for one route ahead of the rate limit decision,
// so it also sees requests that end up throttled. A hook may abort the
// request but must not call c.Next.
func (routerService *RouterService) BeforeRateLimit(controller *RESTController, method, path string, hook MiddlewareFunc) {
	key := routerService.keyForPathAndMethod(normalizePath(controller, path), method)
	if _, exists := routerService.preLimitHooks[key]; exists {
		panic(fmt.Sprintf("A pre-rate-limit hook is already registered for %s", key))
	}
	routerService.preLimitHooks[key] = hook
}

// limiterFor prefers the handler's own limiter. Each limiter counts under its
// own scope so an override sharing a Redis instance does not consume the
// default budget.
func (routerService *RouterService) limiterFor(handlerKey string) (ratelimit.RateLimiter, string) {
	if limiter, ok := routerService.rateLimitOverrides[handlerKey]; ok {
		return limiter, handlerKey
	}
	return routerService.rateLimiter, "default"
}

func (routerService *RouterService) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Unmatched paths fall through to NoRoute.
		if c.FullPath() == "" {
			c.Next()
			return
		}

		handlerKey := routerService.keyForPathAndMethod(c.FullPath(), c.Request.Method)
		controller, found := routerService.handlerToControllerMap[handlerKey]
		if !found || controller == nil {
			GetLogger(c).Error("Route has no controller mapping; was it registered outside a RESTController?", "route", c.FullPath(), "method", c.Request.Method)
			c.AbortWithStatusJSON(http.StatusNotFound, NotFoundResult(fmt.Sprintf("There is no handler configured to handle any resource at the path %s", c.Request.URL.Path)).ToJSON())
			return
		}

		if hook, ok := routerService.preLimitHooks[handlerKey]; ok {
			hook(c)
			if c.IsAborted() {
				return
			}
		}

		limiter, scope := routerService.limiterFor(handlerKey)
		if limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		limit, window := limiter.GetLimitDetails()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Window", window.String())

		limited, err := limiter.IsLimited(c.Request.Context(), fmt.Sprintf("ratelimit:%s:%s", scope, clientIP))
		if err != nil {
			// Infrastructure trouble must not block legitimate traffic.
			GetLogger(c).Error("Rate limiter error; allowing request", "error", err, "client_ip", clientIP)
			c.Next()
			return
		}

		if !limited {
			c.Next()
			return
		}

		retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(window.Seconds()))))
		c.Header("Retry-After", retryAfter)
		GetLogger(c).Warn("Rate limit exceeded", "client_ip", clientIP, "scope", scope)
		limiterLabel := "route"
		if scope == "default" {
			limiterLabel = "default"
		}
		routerService.httpMetrics.observeThrottled(c.FullPath(), limiterLabel)

		routerService.abortWithError(c, http.StatusTooManyRequests, "Too many requests",
			"You are sending requests too quickly. Please wait a minute and try again.",
			RateLimitResponse{Limit: limit, Window: window.String(), RetryAfter: retryAfter})
	}
}
