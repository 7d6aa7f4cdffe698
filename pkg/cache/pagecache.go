package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss is returned when no live page is stored under a key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry is returned when the stored value cannot be decoded.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// PageCache stores search response bodies in Redis with a fixed TTL.
type PageCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewPageCache creates a PageCache whose entries live for ttl.
func NewPageCache(redisClient *redis.Client, ttl time.Duration) (*PageCache, error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be > 0 (got %s)", ttl)
	}
	return &PageCache{
		redis: redisClient,
		ttl:   ttl,
	}, nil
}

// TTL returns the lifetime given to new entries.
func (c *PageCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the page stored under key, or ErrCacheMiss.
func (c *PageCache) Get(ctx context.Context, key CacheKey) (*Page, error) {
	data, err := c.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// Redis normally evicts first; this covers clock skew between hosts.
	if page.IsExpired() {
		_ = c.Delete(ctx, key)
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.Inc()
	CacheSize.WithLabelValues("get").Add(float64(len(data)))
	return &page, nil
}

// Put stores body under key for the cache TTL.
func (c *PageCache) Put(ctx context.Context, key CacheKey, body []byte) error {
	data, err := json.Marshal(NewPage(body, c.ttl))
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal page: %w", err)
	}

	if err := c.redis.Set(ctx, key.String(), data, c.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	CacheSize.WithLabelValues("set").Add(float64(len(data)))
	return nil
}

// Delete removes the page stored under key.
func (c *PageCache) Delete(ctx context.Context, key CacheKey) error {
	if err := c.redis.Del(ctx, key.String()).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
