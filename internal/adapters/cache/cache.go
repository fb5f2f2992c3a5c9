// Package cache provides a small redis-backed cache for report payloads.
// When no redis address is configured the client is nil and every
// operation degrades to a miss, so callers need no feature flag.
package cache

import (
	"context"
	"log"
	"time"

	"transit-backoffice/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache wraps an optional redis client
type Cache struct {
	client *redis.Client
}

// New connects to redis if configured. Returns a disabled cache when the
// address is empty or the server is unreachable.
func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Warning: redis unreachable at %s, report cache disabled: %v", cfg.Addr, err)
		return &Cache{}
	}

	log.Printf("✅ Report cache connected [%s]", cfg.Addr)
	return &Cache{client: client}
}

// Enabled reports whether a redis backend is available
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Get returns the cached payload for key, or ok=false on miss/disabled
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores a payload under key for ttl. Failures are ignored: the
// cache is an optimization, never a source of truth.
func (c *Cache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
}

// Close releases the redis connection
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
