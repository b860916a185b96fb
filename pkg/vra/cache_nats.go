package vra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vra-io/catalog-client/internal/constants"
)

// NATSKVConfig configures the NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. "nats://localhost:4222"
	URL string

	// Bucket is the KV bucket name. Created if it does not exist.
	Bucket string

	// TTL is applied to the bucket when it is created
	TTL time.Duration

	// Credentials is an optional path to a NATS credentials file
	Credentials string

	// ConnectionName identifies this client on the server
	ConnectionName string
}

var (
	ErrNATSURLRequired    = errors.New("NATS URL required")
	ErrNATSBucketRequired = errors.New("NATS bucket name required")
)

// NATSKVCache is a Cache backed by a NATS JetStream key-value bucket.
// Entries are shared between all clients using the same bucket.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds to the configured bucket,
// creating it when absent.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	if config.Bucket == "" {
		return nil, ErrNATSBucketRequired
	}

	opts := []nats.Option{}
	if config.ConnectionName != "" {
		opts = append(opts, nats.Name(config.ConnectionName))
	}

	if config.Credentials != "" {
		opts = append(opts, nats.UserCredentials(config.Credentials))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		ttl := config.TTL
		if ttl <= 0 {
			ttl = constants.DefaultCacheTTL
		}

		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    ttl,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %s: %w", config.Bucket, err)
	}

	return &NATSKVCache{
		conn: conn,
		kv:   kv,
	}, nil
}

// Get retrieves an entry by key.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kve, err := c.kv.Get(sanitizeKVKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting key %s: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kve.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry under a key.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}

	_, err = c.kv.Put(sanitizeKVKey(key), data)
	if err != nil {
		return fmt.Errorf("putting key %s: %w", key, err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(sanitizeKVKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}

	return nil
}

// Clear removes all entries from the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging key %s: %w", key, err)
		}
	}

	return nil
}

// Has reports whether a non-expired entry exists for the key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	entry, err := c.Get(ctx, key)

	return err == nil && entry != nil
}

// Close closes the underlying NATS connection.
func (c *NATSKVCache) Close() error {
	c.conn.Close()

	return nil
}

// NATS KV keys cannot contain every character a cache key can, so
// replace the offenders with dots.
func sanitizeKVKey(key string) string {
	replacer := strings.NewReplacer(
		"/", ".",
		":", ".",
		" ", "_",
	)

	return replacer.Replace(key)
}
