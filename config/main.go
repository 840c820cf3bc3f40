package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/seam-landing/config/router"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/internal/models"
	"github.com/akeren/seam-landing/pkg/constants"
	"github.com/akeren/seam-landing/pkg/utils"
	"github.com/akeren/seam-landing/web"
	"gorm.io/gorm"
)

const defaultWaitlistSummaryTTL = 30 * time.Second

type ApplicationConfig struct {
	DB              *gorm.DB
	DBConfig        *DBConfig
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	// Timezone decides which calendar day a visit belongs to.
	Timezone *time.Location
	// AdminToken guards /v1/admin; empty disables the admin API.
	AdminToken         string
	VisitCounterStrict bool
	SecureCookies      bool
	// WaitlistSummaryTTL bounds how stale the cached admin summary may be;
	// zero turns the cache off.
	WaitlistSummaryTTL time.Duration
}

func NewAppConfig() (*AppConfig, error) {
	tz, err := ParseTimezone(os.Getenv("APP_TIMEZONE"))
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		RateLimitRequests:  constants.DefaultRateLimitRequests,
		RateLimitWindow:    constants.DefaultRateLimitWindow(),
		RequestTimeout:     30 * time.Second, // Default request timeout
		Timezone:           tz,
		AdminToken:         sanitizeEnv(os.Getenv("ADMIN_API_TOKEN")),
		VisitCounterStrict: utils.GetEnvBool("VISIT_COUNTER_STRICT", false),
		SecureCookies:      utils.GetEnvBool("SECURE_COOKIES", CurrentEnvironment().IsProduction()),
		WaitlistSummaryTTL: defaultWaitlistSummaryTTL,
	}

	// Override from environment variables
	if reqStr := os.Getenv("RATE_LIMIT_REQUESTS"); reqStr != "" {
		if parsed, err := strconv.Atoi(reqStr); err == nil && parsed > 0 {
			config.RateLimitRequests = parsed
		}
	}

	if winStr := os.Getenv("RATE_LIMIT_WINDOW"); winStr != "" {
		if parsed, err := time.ParseDuration(winStr); err == nil && parsed > 0 {
			config.RateLimitWindow = parsed
		}
	}

	if ttlStr := os.Getenv("WAITLIST_SUMMARY_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil && parsed >= 0 {
			config.WaitlistSummaryTTL = parsed
		}
	}

	if timeoutStr := os.Getenv("REQUEST_TIMEOUT"); timeoutStr != "" {
		if parsed, err := time.ParseDuration(timeoutStr); err == nil && parsed > 0 {
			config.RequestTimeout = parsed
		}
	}

	return config, nil
}

// ParseTimezone resolves an IANA zone name; empty means UTC.
func ParseTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := os.Getenv(AppEnvKey)
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if strings.TrimSpace(appEnv) == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	appConfig, err := NewAppConfig()
	if err != nil {
		return nil, err
	}

	templ, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	dbCfg := NewDBConfig()
	db, err := NewDatabase(logger, dbCfg)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	cache := NewCacheConfig().NewCacheOrNil(logger)

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})
	routerService.SetHTMLTemplate(templ)

	if appConfig.AdminToken == "" {
		logger.Warn("ADMIN_API_TOKEN is not set; admin API will refuse every request")
	}

	logger.Info("Application configuration loaded successfully", "timezone", appConfig.Timezone.String())

	return &ApplicationConfig{
		DB:              db,
		DBConfig:        dbCfg,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
