package visits

import (
	"sync"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type VisitServiceFactory interface {
	CreateService() VisitService
	CreateAdminController(auth router.MiddlewareFunc) *router.RESTController
	Collectors() []prometheus.Collector
}

type DefaultVisitServiceFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	metrics *Metrics
	opts    []ServiceOption

	once    sync.Once
	service VisitService
}

func NewVisitServiceFactory(db *gorm.DB, logger *log.Logger, opts ...ServiceOption) VisitServiceFactory {
	return &DefaultVisitServiceFactory{
		db:      db,
		logger:  logger,
		metrics: NewMetrics(),
		opts:    opts,
	}
}

// CreateService returns one shared service so that every request goes
// through the same circuit breaker.
func (f *DefaultVisitServiceFactory) CreateService() VisitService {
	f.once.Do(func() {
		repository := NewVisitRepository(f.db)
		opts := append([]ServiceOption{WithMetrics(f.metrics)}, f.opts...)
		f.service = NewVisitService(f.logger, repository, opts...)
	})
	return f.service
}

func (f *DefaultVisitServiceFactory) CreateAdminController(auth router.MiddlewareFunc) *router.RESTController {
	return NewVisitsAdminController(f.CreateService(), auth)
}

func (f *DefaultVisitServiceFactory) Collectors() []prometheus.Collector {
	return f.metrics.Collectors()
}
