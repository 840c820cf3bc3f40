package waitlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mapCache struct {
	mu      sync.Mutex
	values  map[string]string
	lastTTL time.Duration
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string]string{}}
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	return c.values[key], nil
}

func (c *mapCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.values[key] = value
	c.lastTTL = ttl
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	delete(c.values, key)
	return nil
}

func newCachedServiceUnderTest(t *testing.T, cache SummaryCache) (WaitlistService, *MockWaitlistRepository) {
	t.Helper()

	mockRepo := NewMockWaitlistRepository(gomock.NewController(t))
	service := NewWaitlistService(log.NewNopLogger(), mockRepo,
		WithClock(func() time.Time { return fixedNow }),
		WithMetrics(NewMetrics()),
		WithSummaryCache(cache, 30*time.Second),
	)
	return service, mockRepo
}

func TestWaitlistService_SummaryIsCached(t *testing.T) {
	cache := newMapCache()
	service, mockRepo := newCachedServiceUnderTest(t, cache)

	mockRepo.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{"notes": 2}, nil).Times(1)

	first, err := service.Summary(context.Background())
	require.NoError(t, err)
	second, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(2), second.ByCategory["notes"])
	assert.Equal(t, 30*time.Second, cache.lastTTL)
}

func TestWaitlistService_WritesEvictCachedSummary(t *testing.T) {
	cache := newMapCache()
	service, mockRepo := newCachedServiceUnderTest(t, cache)
	ctx := context.Background()

	gomock.InOrder(
		mockRepo.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{"notes": 1}, nil),
		mockRepo.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{"notes": 2}, nil),
		mockRepo.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{"notes": 1}, nil),
	)
	mockRepo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
			entry.ID = 2
			return entry, nil
		})
	mockRepo.EXPECT().DeleteEntry(gomock.Any(), uint(2)).Return(nil)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Total)

	_, err = service.SignUp(ctx, &SignupRequest{Email: "grace@example.com", Category: "notes"})
	require.NoError(t, err)

	summary, err = service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)

	require.NoError(t, service.DeleteEntry(ctx, 2))

	summary, err = service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Total)
}

func TestWaitlistService_SummaryIgnoresCacheFailures(t *testing.T) {
	cache := newMapCache()
	cache.err = errors.New("connection refused")
	service, mockRepo := newCachedServiceUnderTest(t, cache)

	mockRepo.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{"ideas": 4}, nil).Times(2)

	for i := 0; i < 2; i++ {
		summary, err := service.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), summary.Total)
	}
}

func TestWaitlistService_SummaryDiscardsMalformedCacheEntry(t *testing.T) {
	cache := newMapCache()
	cache.values[summaryCacheKey] = "{not json"
	service, mockRepo := newCachedServiceUnderTest(t, cache)

	mockRepo.EXPECT().CountByCategory(gomock.Any()).Return(map[string]int64{}, nil)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Total)
	assert.NotEqual(t, "{not json", cache.values[summaryCacheKey])
}
