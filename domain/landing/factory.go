package landing

import (
	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/pkg/factory"
)

type LandingControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultLandingControllerFactory struct {
	deps     Dependencies
	limiters factory.RateLimiterFactory
}

// NewLandingControllerFactory builds the signup limiter from limiters unless
// deps already carries one.
func NewLandingControllerFactory(deps Dependencies, limiters factory.RateLimiterFactory) LandingControllerFactory {
	return &DefaultLandingControllerFactory{deps: deps, limiters: limiters}
}

func (f *DefaultLandingControllerFactory) CreateController() *router.RESTController {
	deps := f.deps
	if deps.SignupLimiter == nil && f.limiters != nil {
		deps.SignupLimiter = f.limiters.CreateRateLimiter()
	}
	return NewLandingController(deps)
}
