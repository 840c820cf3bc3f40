package monitoring

import (
	"context"
	"time"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/factory"
	"gorm.io/gorm"
)

// healthRequestsPerMinute is tighter than the router default; probes rarely
// need more.
const healthRequestsPerMinute = 30

// MonitoringCache defines the cache interface for the monitoring controller factory.
type MonitoringCache interface {
	Ping(ctx context.Context) error
}

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db     *gorm.DB
	logger *log.Logger
	cache  MonitoringCache
}

func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger, cache MonitoringCache) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	var limiterCache factory.Cache
	if f.cache != nil {
		limiterCache = f.cache
	}
	limiter := factory.NewDefaultRateLimiterFactory(healthRequestsPerMinute, time.Minute, limiterCache, f.logger).CreateRateLimiter()

	var cache Cache
	if f.cache != nil {
		cache = f.cache
	}
	return NewMonitoringController(f.db, f.logger, cache, limiter)
}
