package db

import (
	"github.com/Lawmlor123/run-app/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for the configured Redis, or nil when no
// address is set. Redis is optional: the hub and route cache degrade to
// single-instance, uncached behavior without it.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
