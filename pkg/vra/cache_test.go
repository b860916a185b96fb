package vra_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vra-io/catalog-client/pkg/vra"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	ctx := context.Background()

	entry := &vra.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "abc123",
	}

	// Set entry
	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	// Get entry
	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	ctx := context.Background()

	_, err := cache.Get(ctx, "nonexistent")
	require.Error(t, err)
	require.ErrorIs(t, err, vra.ErrCacheKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	ctx := context.Background()

	entry := &vra.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(-1 * time.Hour), // Already expired
		ETag:      "abc123",
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.Error(t, err)
	require.ErrorIs(t, err, vra.ErrCacheEntryExpired)
}

func TestMemoryCache_Delete(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	ctx := context.Background()

	entry := &vra.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	// Set and verify
	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)
	assert.True(t, cache.Has(ctx, "key1"))

	// Delete
	err = cache.Delete(ctx, "key1")
	require.NoError(t, err)

	// Verify deleted
	assert.False(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	ctx := context.Background()

	// Add multiple entries
	for i := 0; i < 3; i++ {
		entry := &vra.CacheEntry{
			Data:      []byte("test data"),
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		_ = cache.Set(ctx, string(rune('a'+i)), entry)
	}

	// Verify entries exist
	assert.True(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))

	// Clear cache
	err := cache.Clear(ctx)
	require.NoError(t, err)

	// Verify all cleared
	assert.False(t, cache.Has(ctx, "a"))
	assert.False(t, cache.Has(ctx, "b"))
	assert.False(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_MaxSize(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(2)
	ctx := context.Background()

	// Add entries past the max size
	for i := 0; i < 3; i++ {
		entry := &vra.CacheEntry{
			Data:      []byte("test data"),
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour),
		}
		_ = cache.Set(ctx, string(rune('a'+i)), entry)
	}

	// The oldest entry must have been evicted.
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	ctx := context.Background()

	// Add expired and non-expired entries
	expiredEntry := &vra.CacheEntry{
		Data:      []byte("expired"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	validEntry := &vra.CacheEntry{
		Data:      []byte("valid"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	_ = cache.Set(ctx, "expired", expiredEntry)
	_ = cache.Set(ctx, "valid", validEntry)

	// Run cleanup
	cache.Cleanup()

	// Valid entry should still exist
	assert.True(t, cache.Has(ctx, "valid"))
	// Expired entry should be gone
	assert.False(t, cache.Has(ctx, "expired"))
}

func TestCacheManager_GetCacheKey(t *testing.T) {
	t.Parallel()

	manager := vra.NewCacheManager(nil, nil)

	// Test with no params
	key1 := manager.GetCacheKey("GET", "/catalog-service/api/consumer/resources", nil)
	assert.Equal(t, "GET:/catalog-service/api/consumer/resources", key1)

	// Params are sorted into a deterministic key
	params := map[string]string{"page": "1", "limit": "50"}
	key2 := manager.GetCacheKey("GET", "/catalog-service/api/consumer/resources", params)
	assert.Equal(t, "GET:/catalog-service/api/consumer/resources:limit=50&page=1", key2)
}

func TestCacheManager_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	manager := vra.NewCacheManager(cache, nil)
	ctx := context.Background()

	data := []byte("test data")
	key := "test-key"

	// Set data
	err := manager.Set(ctx, key, data, 1*time.Hour)
	require.NoError(t, err)

	// Get data
	retrieved, err := manager.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, retrieved)

	// Check stats
	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestCacheManager_SetWithETag(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	manager := vra.NewCacheManager(cache, nil)
	ctx := context.Background()

	data := []byte("test data")
	key := "test-key"
	etag := "abc123"

	// Set data with ETag
	err := manager.SetWithETag(ctx, key, data, etag, 1*time.Hour)
	require.NoError(t, err)

	// Get data
	retrieved, err := manager.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, retrieved)
}

func TestCacheManager_Miss(t *testing.T) {
	t.Parallel()

	cache := vra.NewMemoryCache(10)
	manager := vra.NewCacheManager(cache, nil)
	ctx := context.Background()

	// Try to get non-existent key
	_, err := manager.Get(ctx, "nonexistent")
	require.Error(t, err)

	// Check stats
	stats := manager.GetStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheManager_ValueTooLarge(t *testing.T) {
	t.Parallel()

	manager := vra.NewCacheManager(vra.NewMemoryCache(10), &vra.CacheOptions{
		DefaultTTL:   time.Minute,
		MaxValueSize: 4,
	})

	err := manager.Set(context.Background(), "key", []byte("too large"), 0)
	require.ErrorIs(t, err, vra.ErrCacheValueTooLarge)
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	stats := &vra.CacheStats{
		Hits:   75,
		Misses: 25,
	}

	hitRate := stats.GetHitRate()
	assert.InDelta(t, 0.75, hitRate, 0.0001)

	// Test with no requests
	emptyStats := &vra.CacheStats{}
	assert.InDelta(t, 0.0, emptyStats.GetHitRate(), 0.0001)
}
