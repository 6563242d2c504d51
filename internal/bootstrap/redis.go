package bootstrap

import (
	"github.com/redis/go-redis/v9"

	"github.com/butlerian/directory/internal/cache"
	"github.com/butlerian/directory/internal/config"
	"github.com/butlerian/directory/internal/events"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/redisclient"
)

// SetupRedis connects to Redis if enabled. Returns nil when Redis is
// disabled or unavailable; the page cache and event publisher degrade to
// no-ops in that case.
func SetupRedis(cfg *config.Config, log logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client, err := redisclient.New(cfg.Redis)
	if err != nil {
		log.Warn("Redis not available, page cache and events disabled",
			logger.Error(err),
		)
		return nil
	}

	log.Info("Redis connected",
		logger.String("redis_address", cfg.Redis.Address),
	)
	return client
}

// SetupEventPublisher creates the moderation event publisher. Nil client
// means a nil publisher, which is a safe no-op.
func SetupEventPublisher(client *redis.Client, log logger.Logger) *events.Publisher {
	return events.NewPublisher(client, log)
}

// SetupPageCache creates the public page cache. Nil client means a nil
// cache, which always misses.
func SetupPageCache(client *redis.Client, cfg *config.Config, log logger.Logger) *cache.PageCache {
	return cache.New(client, cfg.Redis.PageCacheTTL, log)
}
