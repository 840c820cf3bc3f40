package waitlist

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akeren/seam-landing/internal/log"
)

const summaryCacheKey = "seam:waitlist:summary"

// SummaryCache is the subset of the shared Redis cache the waitlist needs.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// WithSummaryCache caches Summary results for ttl. Signups and deletes
// through this service evict the entry; other writers are seen after ttl.
func WithSummaryCache(cache SummaryCache, ttl time.Duration) ServiceOption {
	return func(s *waitlistService) {
		if cache != nil && ttl > 0 {
			s.summaryCache = cache
			s.summaryTTL = ttl
		}
	}
}

// cachedSummary returns nil on a miss. Cache failures only cost a query.
func (s *waitlistService) cachedSummary(ctx context.Context, logger *log.Logger) *WaitlistSummary {
	if s.summaryCache == nil {
		return nil
	}

	raw, err := s.summaryCache.Get(ctx, summaryCacheKey)
	if err != nil {
		logger.Warn("Waitlist summary cache read failed", "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var summary WaitlistSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		logger.Warn("Discarding malformed waitlist summary cache entry", "error", err)
		return nil
	}
	return &summary
}

func (s *waitlistService) storeSummary(ctx context.Context, logger *log.Logger, summary *WaitlistSummary) {
	if s.summaryCache == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.summaryCache.Set(ctx, summaryCacheKey, string(payload), s.summaryTTL); err != nil {
		logger.Warn("Waitlist summary cache write failed", "error", err)
	}
}

func (s *waitlistService) evictSummary(ctx context.Context, logger *log.Logger) {
	if s.summaryCache == nil {
		return
	}

	if err := s.summaryCache.Delete(ctx, summaryCacheKey); err != nil {
		logger.Warn("Waitlist summary cache eviction failed", "error", err)
	}
}
