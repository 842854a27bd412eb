package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myMarket/domain"
)

// VectorCache is a byte-level key/value store with per-entry TTL. A miss is
// reported as ok=false with a nil error.
type VectorCache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

const DefaultVectorTTL = 24 * time.Hour

func UserVectorKey(userID uint) string {
	return fmt.Sprintf("user_vector:%d", userID)
}

func ProductVectorKey(productID uint64) string {
	return fmt.Sprintf("product_vector:%d", productID)
}

const (
	vectorUser    = "user"
	vectorProduct = "product"
)

func (s *RecommendationService) cachedUserVector(ctx context.Context, userID uint) (*domain.UserVector, error) {
	var uv domain.UserVector
	ok, err := s.getVector(ctx, vectorUser, UserVectorKey(userID), &uv)
	if err != nil || !ok {
		return nil, err
	}
	return &uv, nil
}

func (s *RecommendationService) cachedProductVector(ctx context.Context, productID uint64) (*domain.ProductVector, error) {
	var pv domain.ProductVector
	ok, err := s.getVector(ctx, vectorProduct, ProductVectorKey(productID), &pv)
	if err != nil || !ok {
		return nil, err
	}
	return &pv, nil
}

func (s *RecommendationService) getVector(ctx context.Context, kind, key string, dest any) (bool, error) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		VectorCacheLookupsTotal.WithLabelValues(kind, "error").Inc()
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		VectorCacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false, nil
	}

	// A corrupt entry is treated like a miss and gets rebuilt.
	if err := json.Unmarshal(raw, dest); err != nil {
		VectorCacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false, nil
	}

	VectorCacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
	return true, nil
}

func (s *RecommendationService) putVector(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, raw, s.opts.VectorTTL); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
