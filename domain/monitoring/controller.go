package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/ratelimit"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database int `json:"database"` // 1 = healthy, 0 = unhealthy
	Cache    int `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int `json:"uptime"`   // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	startTime time.Time
}

// NewMonitoringController serves GET and HEAD /health. limiter may be nil to
// use the router default.
func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, limiter ratelimit.RateLimiter) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, limiter, "health", ctrl.healthCheck)
			routerService.AddHeadHandler(controller, nil, "health", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)
	logger.Debug("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	healthStatus := ctrl.performHealthChecks(ctx, logger)

	// The database is the only hard dependency; the cache is optional.
	if healthStatus.Database == 0 {
		return &router.ServiceResult{
			StatusCode: http.StatusServiceUnavailable,
			Data:       healthStatus,
			Message:    "seam-landing health check failed",
		}
	}

	return router.OKResult(healthStatus, "seam-landing health check completed")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	checkDatabaseConnectivity(ctx, ctrl, &status, logger)

	checkCacheConnectivity(ctx, ctrl, &status, logger)

	return status
}

func checkCacheConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.cache == nil {
		status.Cache = 0 // Cache not configured
		logger.Debug("Cache not configured, cache health check skipped")
		return
	}

	if ctrl.checkCache(ctx) {
		status.Cache = 1
		logger.Debug("Cache health check passed")
	} else {
		status.Cache = 0
		logger.Error("Cache health check failed")
	}
}

func checkDatabaseConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.checkDatabase(ctx) {
		status.Database = 1
		logger.Debug("Database health check passed")
	} else {
		status.Database = 0
		logger.Error("Database health check failed")
	}
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}

func (ctrl *MonitoringController) checkCache(ctx context.Context) bool {
	return ctrl.cache.Ping(ctx) == nil
}
