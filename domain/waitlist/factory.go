package waitlist

import (
	"sync"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	// CreateService returns the shared service; the landing page and the
	// admin API record into the same metrics.
	CreateService() WaitlistService
	CreateAdminController(auth router.MiddlewareFunc) *router.RESTController
	Collectors() []prometheus.Collector
}

type DefaultWaitlistServiceFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	metrics *Metrics
	opts    []ServiceOption

	once    sync.Once
	service WaitlistService
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, opts ...ServiceOption) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:      db,
		logger:  logger,
		metrics: NewMetrics(),
		opts:    opts,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	f.once.Do(func() {
		repository := NewWaitlistRepository(f.db)
		opts := append([]ServiceOption{WithMetrics(f.metrics)}, f.opts...)
		f.service = NewWaitlistService(f.logger, repository, opts...)
	})
	return f.service
}

func (f *DefaultWaitlistServiceFactory) CreateAdminController(auth router.MiddlewareFunc) *router.RESTController {
	return NewWaitlistAdminController(f.CreateService(), auth)
}

func (f *DefaultWaitlistServiceFactory) Collectors() []prometheus.Collector {
	return f.metrics.Collectors()
}
