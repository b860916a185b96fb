package vra_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vra-io/catalog-client/pkg/vra"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	config := &vra.CacheConfig{
		Type: vra.CacheTypeMemory,
		Memory: &vra.MemoryCacheConfig{
			MaxSize: 100,
		},
	}

	cache, err := vra.NewCacheFromConfig(config)
	require.NoError(t, err)
	require.NotNil(t, cache)

	// Test basic operations
	ctx := context.Background()
	entry := &vra.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "test-etag",
	}

	// Set
	err = cache.Set(ctx, "test-key", entry)
	assert.NoError(t, err)

	// Get
	retrieved, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)

	// Has
	assert.True(t, cache.Has(ctx, "test-key"))

	// Delete
	err = cache.Delete(ctx, "test-key")
	assert.NoError(t, err)
	assert.False(t, cache.Has(ctx, "test-key"))
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	config := &vra.CacheConfig{
		Type: vra.CacheTypeNone,
	}

	cache, err := vra.NewCacheFromConfig(config)
	require.NoError(t, err)
	require.NotNil(t, cache)

	ctx := context.Background()
	entry := &vra.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	// Set should succeed but do nothing
	err = cache.Set(ctx, "test-key", entry)
	assert.NoError(t, err)

	// Get should always fail
	_, err = cache.Get(ctx, "test-key")
	require.ErrorIs(t, err, vra.ErrCacheDisabled)

	// Has should always return false
	assert.False(t, cache.Has(ctx, "test-key"))

	// Delete should succeed but do nothing
	err = cache.Delete(ctx, "test-key")
	assert.NoError(t, err)
}

func TestCacheFactory_DefaultConfig(t *testing.T) {
	t.Parallel()

	cache, err := vra.NewCacheFromConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, cache)

	_, ok := cache.(*vra.MemoryCache)
	assert.True(t, ok)
}

func TestCacheFactory_NATSRequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := vra.NewCacheFromConfig(&vra.CacheConfig{Type: vra.CacheTypeNATS})
	require.ErrorIs(t, err, vra.ErrNATSConfigRequired)
}

func TestCacheFactory_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := vra.NewCacheFromConfig(&vra.CacheConfig{Type: "redis"})
	require.ErrorIs(t, err, vra.ErrUnsupportedCacheType)
}

func TestNATSKVCache_ConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := vra.NewNATSKVCache(nil)
	require.ErrorIs(t, err, vra.ErrNATSURLRequired)

	_, err = vra.NewNATSKVCache(&vra.NATSKVConfig{URL: "nats://localhost:4222"})
	require.ErrorIs(t, err, vra.ErrNATSBucketRequired)
}
