// file: internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMemoryCache(t *testing.T) Cache {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	c := NewMemoryCache(DefaultConfig(), logger)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "greeting", "karibu", time.Minute))

	value, ok := c.Get(ctx, "greeting")
	require.True(t, ok)
	assert.Equal(t, "karibu", value)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", 1, 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	assert.False(t, c.Exists(ctx, "key"))
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "badges:summary:1", "a", time.Minute))
	require.NoError(t, c.Set(ctx, "badges:summary:2", "b", time.Minute))
	require.NoError(t, c.Set(ctx, "other:key", "c", time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "badges:summary:*"))

	assert.False(t, c.Exists(ctx, "badges:summary:1"))
	assert.False(t, c.Exists(ctx, "badges:summary:2"))
	assert.True(t, c.Exists(ctx, "other:key"))
}

func TestRedisValueEncodingRoundTrip(t *testing.T) {
	type board struct {
		Name     string `json:"name"`
		Progress int64  `json:"progress"`
	}

	encoded, err := encodeValue(&board{Name: "First Timer", Progress: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"First Timer","progress":3}`, encoded)

	decoded, ok := decodeValue(encoded).(map[string]interface{})
	require.True(t, ok, "struct values must come back as decoded JSON")
	assert.Equal(t, "First Timer", decoded["name"])

	// Plain strings pass through both directions untouched.
	encoded, err = encodeValue("karibu")
	require.NoError(t, err)
	assert.Equal(t, "karibu", encoded)
	assert.Equal(t, "karibu", decodeValue("karibu"))
}

func TestMemoryCacheStats(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
	c.Get(ctx, "key")
	c.Get(ctx, "missing")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
