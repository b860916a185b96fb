package vra

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vra-io/catalog-client/internal/constants"
)

// Cache abstracts a cache backend for API responses.
type Cache interface {
	// Get retrieves an entry by key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores an entry under a key
	Set(ctx context.Context, key string, entry *CacheEntry) error

	// Delete removes an entry
	Delete(ctx context.Context, key string) error

	// Clear removes all entries
	Clear(ctx context.Context) error

	// Has reports whether a non-expired entry exists for the key
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a single cached payload.
type CacheEntry struct {
	// Data is the cached response body
	Data []byte

	// ExpiresAt is when the entry becomes stale
	ExpiresAt time.Time

	// ETag is the entity tag of the cached response, if any
	ETag string
}

// Expired reports whether the entry is past its expiration time.
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Static errors for err113 compliance.
var (
	ErrCacheKeyNotFound   = errors.New("cache key not found")
	ErrCacheEntryExpired  = errors.New("cache entry expired")
	ErrCacheValueTooLarge = errors.New("cache value too large")
)

// CacheOptions are common options applied to any cache backend.
type CacheOptions struct {
	// DefaultTTL is used when an entry is stored without an explicit TTL
	DefaultTTL time.Duration

	// MaxValueSize limits the size of a single cached value in bytes.
	// Zero means no limit.
	MaxValueSize int
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL:   constants.DefaultCacheTTL,
		MaxValueSize: constants.MaxCacheValueSize,
	}
}

// MemoryCache is an in-memory cache with a bounded size.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	order   []string
	maxSize int
}

// NewMemoryCache creates a new in-memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry by key.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry under a key, evicting the oldest entry when full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize {
			c.evictOldestLocked()
		}

		c.order = append(c.order, key)
	}

	c.entries[key] = entry

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return nil
	}

	delete(c.entries, key)
	c.removeFromOrderLocked(key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)
	c.order = nil

	return nil
}

// Has reports whether a non-expired entry exists for the key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && !entry.Expired()
}

// Cleanup removes all expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
			c.removeFromOrderLocked(key)
		}
	}
}

func (c *MemoryCache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *MemoryCache) removeFromOrderLocked(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}
}

// CacheStats is a snapshot of cache effectiveness counters.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// GetHitRate returns the fraction of lookups served from cache.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager wraps a Cache backend with key construction, default TTLs
// and hit/miss accounting.
type CacheManager struct {
	cache   Cache
	options *CacheOptions

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewCacheManager creates a cache manager. A nil cache disables caching
// and a nil options uses DefaultCacheOptions.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if cache == nil {
		cache = NewNoOpCache()
	}

	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CacheManager{
		cache:   cache,
		options: options,
	}
}

// GetCacheKey builds a deterministic cache key from a method, path and
// query parameters.
func (m *CacheManager) GetCacheKey(method, path string, params map[string]string) string {
	if len(params) == 0 {
		return method + ":" + path
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	return method + ":" + path + ":" + strings.Join(pairs, "&")
}

// Get retrieves cached data by key.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.misses.Add(1)

		return nil, err
	}

	m.hits.Add(1)

	return entry.Data, nil
}

// Set stores data under a key with the given TTL. A zero TTL uses the
// manager's default.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data plus its entity tag under a key.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	if m.options.MaxValueSize > 0 && len(data) > m.options.MaxValueSize {
		return fmt.Errorf("%w: %d bytes", ErrCacheValueTooLarge, len(data))
	}

	if ttl <= 0 {
		ttl = m.options.DefaultTTL
	}

	err := m.cache.Set(ctx, key, &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		ETag:      etag,
	})
	if err != nil {
		return err
	}

	m.sets.Add(1)

	return nil
}

// Delete removes a key from the cache.
func (m *CacheManager) Delete(ctx context.Context, key string) error {
	return m.cache.Delete(ctx, key)
}

// GetStats returns a snapshot of the cache counters.
func (m *CacheManager) GetStats() CacheStats {
	return CacheStats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
	}
}
