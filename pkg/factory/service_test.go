package factory

import (
	"context"
	"testing"
	"time"

	"github.com/akeren/seam-landing/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
)

type pingOnlyCache struct{}

func (pingOnlyCache) Ping(context.Context) error { return nil }

func TestDefaultRateLimiterFactory_FallsBackToInMemory(t *testing.T) {
	for name, cache := range map[string]Cache{"nil cache": nil, "no redis client": pingOnlyCache{}} {
		t.Run(name, func(t *testing.T) {
			limiter := NewDefaultRateLimiterFactory(10, time.Minute, cache, nil).CreateRateLimiter()

			assert.IsType(t, &ratelimit.InMemoryRateLimiter{}, limiter)
			requests, window := limiter.GetLimitDetails()
			assert.Equal(t, 10, requests)
			assert.Equal(t, time.Minute, window)
		})
	}
}
