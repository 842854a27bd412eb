// Package redis opens the Redis connection that backs the vector cache.
package redis

import (
	"context"
	"fmt"
	"myMarket/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Options sizes the client for vector cache traffic. Retries stay at one;
// the circuit breaker in front of the cache counts failures.
func Options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:                  fmt.Sprintf("%s:%s", cfg.Redis.RedisHost, cfg.Redis.RedisPort),
		Password:              cfg.Redis.RedisPassword,
		DB:                    cfg.Redis.RedisDB,
		ClientName:            cfg.App.Name,
		DialTimeout:           cfg.Cache.RedisDialTimeout,
		ReadTimeout:           cfg.Cache.RedisOpTimeout,
		WriteTimeout:          cfg.Cache.RedisOpTimeout,
		ContextTimeoutEnabled: true,
		PoolSize:              cfg.Cache.RedisPoolSize,
		MinIdleConns:          cfg.Cache.RedisMinIdleConns,
		MaxRetries:            1,
	}
}

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(ctx, cfg.Cache.RedisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
