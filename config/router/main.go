package router

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/ratelimit"
	"github.com/akeren/seam-landing/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// DefaultTimeoutDuration is the default request timeout
const DefaultTimeoutDuration = 30 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RouterService struct {
	engine          *gin.Engine
	server          *http.Server
	logger          *log.Logger
	settings        httpSettings
	requestTimeout  time.Duration
	rateLimiter     ratelimit.RateLimiter
	redisClient     *redis.Client
	metricsRegistry *prometheus.Registry
	httpMetrics     *httpMetrics
	hasTemplates    bool

	handlerToControllerMap map[string]*RESTController
	rateLimitOverrides     map[string]ratelimit.RateLimiter
	preLimitHooks          map[string]MiddlewareFunc
}

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

func CreateRouterService(logger *log.Logger, cache Cache, routerConfig *RouterConfig) *RouterService {
	settings := loadHTTPSettings()
	if settings.ginMode != "" {
		logger.Info("Setting Gin mode", "mode", settings.ginMode)
		gin.SetMode(settings.ginMode)
	}

	timeout := routerConfig.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeoutDuration
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.HandleMethodNotAllowed = true
	ginRouter.RedirectTrailingSlash = true

	if utils.IsTracingEnabled() {
		ginRouter.Use(otelgin.Middleware(utils.OTelServiceName()))
		logger.Info("Tracing middleware enabled")
	}

	// Gin trusts every proxy by default, which lets X-Forwarded-For spoof
	// ClientIP() and with it the per-IP rate limits.
	if err := ginRouter.SetTrustedProxies(settings.trustedProxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = ginRouter.SetTrustedProxies(nil)
	} else if settings.trustedProxies == nil {
		logger.Info("Trusted proxies disabled (TRUSTED_PROXIES not set)")
	}

	rs := &RouterService{
		engine:                 ginRouter,
		logger:                 logger,
		settings:               settings,
		requestTimeout:         timeout,
		handlerToControllerMap: make(map[string]*RESTController),
		rateLimitOverrides:     make(map[string]ratelimit.RateLimiter),
		preLimitHooks:          make(map[string]MiddlewareFunc),
	}

	if provider, ok := cache.(RedisClientProvider); ok {
		rs.redisClient = provider.GetClient()
	}

	rs.initRateLimiting(routerConfig.RateLimitRequests, routerConfig.RateLimitWindow)

	// /metrics is mounted ahead of the request middlewares and is never throttled.
	rs.mountMetrics()

	ginRouter.Use(
		rs.requestContextMiddleware(),
		rs.requestLoggingMiddleware(),
		rs.securityHeadersMiddleware(),
		rs.maxBodySizeMiddleware(),
		rs.corsMiddleware(),
		rs.timeoutMiddleware(),
		rs.rateLimitMiddleware(),
	)

	ginRouter.NoRoute(func(c *gin.Context) {
		GetLogger(c).Warn("Route not found", "path", c.Request.URL.Path)
		if rs.wantsHTML(c) {
			rs.abortWithError(c, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.", nil)
			return
		}
		rs.abortWithError(c, http.StatusNotFound, "", "Route not found", nil)
	})

	ginRouter.NoMethod(func(c *gin.Context) {
		GetLogger(c).Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		rs.abortWithError(c, http.StatusMethodNotAllowed, "Method not allowed", "Method not allowed", nil)
	})

	rs.server = &http.Server{
		Addr:              ":8080",
		Handler:           ginRouter,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized")
	return rs
}

// SetHTMLTemplate installs the templates used by page handlers and the
// HTML variant of error responses.
func (routerService *RouterService) SetHTMLTemplate(templ *template.Template) {
	routerService.engine.SetHTMLTemplate(templ)
	routerService.hasTemplates = true
}

func (routerService *RouterService) wantsHTML(c *gin.Context) bool {
	if !routerService.hasTemplates {
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return log.GetLoggerInstanceFromContext(c.Request.Context(), routerService.logger)
}

func (routerService *RouterService) Cleanup() {
	if routerService.rateLimiter != nil {
		if err := routerService.rateLimiter.Close(); err != nil {
			routerService.logger.Error("Failed to close rate limiter", "error", err)
		}
	}
	for key, limiter := range routerService.rateLimitOverrides {
		if err := limiter.Close(); err != nil {
			routerService.logger.Error("Failed to close rate limiter", "scope", key, "error", err)
		}
	}
	routerService.logger.Info("Router service cleanup completed")
}

func (routerService *RouterService) MountController(controller *RESTController) {
	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"path", controller.mountPoint,
		"version", controller.version,
		"handlers", controller.handlerCount,
	)
}

func (routerService *RouterService) RunHTTPServer() error {
	appPort := utils.GetEnvTrimmedOrDefault("APP_PORT", "8080")
	routerService.server.Addr = ":" + appPort

	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		routerService.logger.Error("Failed to start HTTP server", "error", err)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server gracefully...")
	return routerService.server.Shutdown(ctx)
}
