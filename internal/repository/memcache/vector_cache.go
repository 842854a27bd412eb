// Package memcache is an in-process VectorCache for single-node deployments.
package memcache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/coocood/freecache"
)

// minimum size freecache accepts
const minSize = 512 * 1024

type VectorCache struct {
	cache *freecache.Cache
}

// NewVectorCache allocates sizeBytes up front. Entries are evicted LRU once
// the cache is full.
func NewVectorCache(sizeBytes int) *VectorCache {
	if sizeBytes < minSize {
		sizeBytes = minSize
	}
	return &VectorCache{cache: freecache.NewCache(sizeBytes)}
}

func newWithTimer(sizeBytes int, timer freecache.Timer) *VectorCache {
	return &VectorCache{cache: freecache.NewCacheCustomTimer(sizeBytes, timer)}
}

func (c *VectorCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	value, err := c.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get vector from memory cache: %w", err)
	}
	return value, true, nil
}

// Set stores value with ttl rounded up to whole seconds.
func (c *VectorCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.cache.Set([]byte(key), value, ttlSeconds(ttl)); err != nil {
		return fmt.Errorf("failed to store vector in memory cache: %w", err)
	}
	return nil
}

func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}

func (c *VectorCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
