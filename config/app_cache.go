package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/akeren/seam-landing/internal/log"
	pkgredis "github.com/akeren/seam-landing/pkg/redis"
	"github.com/akeren/seam-landing/pkg/utils"
)

// Cache is the shared Redis connection. The router and signup limiters use
// its client for distributed counters; the waitlist summary is cached
// through Get/Set/Delete.
type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set uses ttl=0 for no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

var ErrCacheNotConfigured = errors.New("cache: REDIS_HOST is not set")

type CacheConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewCacheConfig() *CacheConfig {
	cc := &CacheConfig{
		Host:     utils.GetEnvTrimmed("REDIS_HOST"),
		Port:     utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	if raw := utils.GetEnvTrimmed("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil && db >= 0 {
			cc.DB = db
		}
	}

	return cc
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(&pkgredis.Config{
		Host:     cc.Host,
		Port:     cc.Port,
		Password: cc.Password,
		DB:       cc.DB,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Redis connected; rate limits are shared across instances", "host", cc.Host, "db", cc.DB)
	return cache, nil
}

// NewCacheOrNil never fails startup: without Redis the landing page keeps
// per-process rate limits and an uncached waitlist summary.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("REDIS_HOST not set; using in-process rate limits")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		logger.Error("Redis unavailable; using in-process rate limits", "host", cc.Host, "error", err)
		return nil
	}

	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	logger.Info("Redis connection closed")
	return nil
}
