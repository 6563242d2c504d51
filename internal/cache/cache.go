// Package cache provides a Redis-backed page cache for public list
// endpoints, with explicit revalidation.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/butlerian/directory/internal/logger"
)

const keyPrefix = "page:"

// PageCache caches rendered JSON response bodies keyed by request path.
// A nil *PageCache is a no-op, so callers never need a Redis to run.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log logger.Logger) *PageCache {
	if client == nil {
		return nil
	}
	return &PageCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Get returns the cached body for a path, or nil on miss. Redis failures are
// logged and treated as misses; the cache never breaks a request.
func (c *PageCache) Get(ctx context.Context, path string) []byte {
	if c == nil || c.client == nil {
		return nil
	}

	body, err := c.client.Get(ctx, keyPrefix+path).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.log != nil {
			c.log.Warn("Page cache read failed",
				logger.String("path", path),
				logger.Error(err),
			)
		}
		return nil
	}
	return body
}

// Set stores a response body for a path. Best effort.
func (c *PageCache) Set(ctx context.Context, path string, body []byte) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, keyPrefix+path, body, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("Page cache write failed",
			logger.String("path", path),
			logger.Error(err),
		)
	}
}

// Invalidate drops the cached entry for a path. Used by the revalidation
// endpoint after admin writes.
func (c *PageCache) Invalidate(ctx context.Context, path string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, keyPrefix+path).Err(); err != nil {
		return err
	}
	return nil
}
