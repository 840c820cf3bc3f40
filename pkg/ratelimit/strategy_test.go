package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryRateLimiter_IsLimited_IsPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)
	ctx := context.Background()

	limited, err := limiter.IsLimited(ctx, "client-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("first request for client-a should not be limited")
	}

	limited, err = limiter.IsLimited(ctx, "client-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limited {
		t.Fatalf("second immediate request for client-a should be limited")
	}

	limited, err = limiter.IsLimited(ctx, "client-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("first request for client-b should not be limited (per-key limiter)")
	}
}

func TestInMemoryRateLimiter_BurstMatchesRequests(t *testing.T) {
	limiter := NewInMemoryRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		limited, _ := limiter.IsLimited(context.Background(), "signup")
		if limited {
			t.Fatalf("request %d should fit in the burst", i+1)
		}
	}

	if limited, _ := limiter.IsLimited(context.Background(), "signup"); !limited {
		t.Fatalf("fourth request should be limited")
	}
}

func TestInMemoryRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)
	_, _ = limiter.IsLimited(context.Background(), "old")
	limiter.limiters["old"].lastSeen = time.Now().Add(-time.Hour)

	limiter.evictIdle(time.Now().Add(-2 * time.Second))

	if _, ok := limiter.limiters["old"]; ok {
		t.Fatalf("expected idle key to be evicted")
	}
}

func TestNewRateLimiter_DefaultsToInMemory(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{Requests: 5, Window: time.Minute})

	if _, ok := limiter.(*InMemoryRateLimiter); !ok {
		t.Fatalf("expected in-memory limiter without a Redis client, got %T", limiter)
	}

	requests, window := limiter.GetLimitDetails()
	if requests != 5 || window != time.Minute {
		t.Fatalf("unexpected limit details: %d/%s", requests, window)
	}
}
