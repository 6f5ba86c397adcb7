// file: internal/services/badge_service_test.go
package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/cache"
	"picnicquest/internal/models"
)

// jsonCache mimics the Redis provider's serialization: values are
// stored as JSON strings and come back decoded into generic types.
type jsonCache struct {
	cache.Cache
}

func (c *jsonCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Cache.Set(ctx, key, string(data), ttl)
}

func (c *jsonCache) Get(ctx context.Context, key string) (interface{}, bool) {
	raw, ok := c.Cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw.(string)), &decoded); err != nil {
		return raw, true
	}
	return decoded, true
}

func newTestBadgeService(t *testing.T) (BadgeService, *fakeProgressRepo, cache.Cache) {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	catalog, err := badges.NewCatalog(badges.DefaultDefinitions())
	require.NoError(t, err)

	progress := newFakeProgressRepo()
	memCache := cache.NewMemoryCache(cache.DefaultConfig(), logger)

	service := NewBadgeService(catalog, progress, memCache, &fakeBus{}, logger)
	return service, progress, memCache
}

func TestCatalogListsAllBadges(t *testing.T) {
	service, _, _ := newTestBadgeService(t)

	catalog := service.Catalog(context.Background())
	assert.Len(t, catalog, len(badges.DefaultDefinitions()))
}

func TestGetUserBadgesMergesProgress(t *testing.T) {
	service, progress, _ := newTestBadgeService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))
	progress.badgeRow[1] = []models.UserBadge{
		{UserID: 1, BadgeID: 1, Progress: 1, Completed: true},
		{UserID: 1, BadgeID: 2, Progress: 3},
	}

	summary, err := service.GetUserBadges(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, len(badges.DefaultDefinitions()), summary.TotalCount)
	assert.Equal(t, 1, summary.EarnedCount)
	assert.Len(t, summary.Badges, summary.TotalCount)

	var regular *BadgeProgress
	for i := range summary.Badges {
		if summary.Badges[i].Badge.ID == 2 {
			regular = &summary.Badges[i]
		}
	}
	require.NotNil(t, regular)
	assert.Equal(t, int64(3), regular.Progress)
	assert.False(t, regular.Completed)
}

func TestGetUserBadgesCachesSummary(t *testing.T) {
	service, progress, memCache := newTestBadgeService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))

	_, err := service.GetUserBadges(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, memCache.Exists(context.Background(), summaryCacheKey(1)))

	// A second read must be served from cache even if the rows change
	// underneath; invalidation happens via bus events.
	progress.badgeRow[1] = []models.UserBadge{{UserID: 1, BadgeID: 1, Progress: 1, Completed: true}}

	summary, err := service.GetUserBadges(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.EarnedCount)
}

func TestGetUserBadgesSurvivesJSONCacheRoundTrip(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	catalog, err := badges.NewCatalog(badges.DefaultDefinitions())
	require.NoError(t, err)

	progress := newFakeProgressRepo()
	c := &jsonCache{Cache: cache.NewMemoryCache(cache.DefaultConfig(), logger)}
	service := NewBadgeService(catalog, progress, c, &fakeBus{}, logger)

	require.NoError(t, progress.InitUser(context.Background(), 1))
	progress.badgeRow[1] = []models.UserBadge{
		{UserID: 1, BadgeID: 1, Progress: 1, Completed: true},
	}

	first, err := service.GetUserBadges(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.EarnedCount)

	// Change the rows underneath; a second read must be served from the
	// serialized cache entry, not reloaded.
	progress.badgeRow[1] = nil

	second, err := service.GetUserBadges(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.EarnedCount, second.EarnedCount)
	assert.Equal(t, first.TotalCount, second.TotalCount)
	assert.Len(t, second.Badges, first.TotalCount)
}

func TestGetUserStatsIncludesEarnedCount(t *testing.T) {
	service, progress, _ := newTestBadgeService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))
	progress.stats[1].TotalBookings = 2
	progress.badgeRow[1] = []models.UserBadge{
		{UserID: 1, BadgeID: 1, Progress: 1, Completed: true},
		{UserID: 1, BadgeID: 2, Progress: 2},
	}

	summary, err := service.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Stats.TotalBookings)
	assert.Equal(t, int64(1), summary.EarnedBadges)
}

func TestGetUserBadgesUnknownUser(t *testing.T) {
	service, _, _ := newTestBadgeService(t)

	_, err := service.GetUserBadges(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestGetUserStatsUnknownUser(t *testing.T) {
	service, _, _ := newTestBadgeService(t)

	_, err := service.GetUserStats(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
