package domain

import (
	"time"

	"github.com/akeren/seam-landing/config"
	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/domain/landing"
	"github.com/akeren/seam-landing/domain/monitoring"
	"github.com/akeren/seam-landing/domain/visits"
	"github.com/akeren/seam-landing/domain/waitlist"
	"github.com/akeren/seam-landing/pkg/constants"
	"github.com/akeren/seam-landing/pkg/factory"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService
	cfg := appConfig.Config

	waitlistOpts := []waitlist.ServiceOption{waitlist.WithLocation(cfg.Timezone)}
	if appConfig.Cache != nil {
		waitlistOpts = append(waitlistOpts, waitlist.WithSummaryCache(appConfig.Cache, cfg.WaitlistSummaryTTL))
	}

	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, waitlistOpts...)
	visitFactory := visits.NewVisitServiceFactory(appConfig.DB, appConfig.Logger, visits.WithLocation(cfg.Timezone))

	rs.RegisterCollectors(waitlistFactory.Collectors()...)
	rs.RegisterCollectors(visitFactory.Collectors()...)

	var cache factory.Cache
	if appConfig.Cache != nil {
		cache = appConfig.Cache
	}
	signupLimiters := factory.NewDefaultRateLimiterFactory(constants.SignupRequestsPerMinute, time.Minute, cache, appConfig.Logger)

	landingFactory := landing.NewLandingControllerFactory(landing.Dependencies{
		Waitlist:           waitlistFactory.CreateService(),
		Visits:             visitFactory.CreateService(),
		Logger:             appConfig.Logger,
		StrictVisitCounter: cfg.VisitCounterStrict,
		SecureCookies:      cfg.SecureCookies,
	}, signupLimiters)

	adminAuth := router.BearerTokenMiddleware(cfg.AdminToken)

	rs.MountController(landingFactory.CreateController())
	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Cache).CreateController())
	rs.MountController(waitlistFactory.CreateAdminController(adminAuth))
	rs.MountController(visitFactory.CreateAdminController(adminAuth))
}
