package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myMarket/pkg/logger"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
	MaxRequests      uint32
	Interval         time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "vector-cache",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		MaxRequests:      1,
		Interval:         time.Minute,
	}
}

// VectorCache stores encoded vectors in Redis. Every call goes through a
// circuit breaker so an unreachable Redis fails fast with
// gobreaker.ErrOpenState instead of waiting out the client timeouts.
type VectorCache struct {
	client  Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewVectorCache(client Client, cfg BreakerConfig) *VectorCache {
	defaults := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = defaults.MaxRequests
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// a missing key is a normal answer, not a failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Vector cache breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &VectorCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (c *VectorCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get vector from Redis: %w", err)
	}

	return raw, true, nil
}

func (c *VectorCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, key, value, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to store vector in Redis: %w", err)
	}

	return nil
}

// State exposes the breaker state for health reporting.
func (c *VectorCache) State() gobreaker.State {
	return c.breaker.State()
}
