package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "postgres")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.VectorTTL)
	assert.Equal(t, 10, cfg.Recommendation.DefaultLimit)
	assert.Equal(t, 50, cfg.Recommendation.MaxLimit)
	assert.Equal(t, 10, cfg.Recommendation.BrowsingWindow)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 20, cfg.Cache.RedisPoolSize)
	assert.Equal(t, 4, cfg.Cache.RedisMinIdleConns)
	assert.Equal(t, 250*time.Millisecond, cfg.Cache.RedisOpTimeout)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("VECTOR_CACHE_DRIVER", "memory")
	t.Setenv("VECTOR_CACHE_TTL_SECONDS", "60")
	t.Setenv("VECTOR_CACHE_BREAKER_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.VectorTTL)
	assert.Equal(t, 5*time.Second, cfg.Cache.BreakerOpenTimeout)
	assert.Equal(t, 2, cfg.Redis.RedisDB)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing jwt secret", env: map[string]string{"JWT_SECRET": ""}, want: "missing jwt secret"},
		{name: "unknown driver", env: map[string]string{"VECTOR_CACHE_DRIVER": "memcached"}, want: "unknown vector cache driver"},
		{name: "bad ttl", env: map[string]string{"VECTOR_CACHE_TTL_SECONDS": "0"}, want: "invalid vector cache ttl"},
		{name: "min idle above pool", env: map[string]string{"VECTOR_CACHE_REDIS_POOL_SIZE": "2", "VECTOR_CACHE_REDIS_MIN_IDLE": "3"}, want: "invalid vector cache redis min idle"},
		{name: "bad op timeout", env: map[string]string{"VECTOR_CACHE_REDIS_OP_TIMEOUT": "0s"}, want: "invalid vector cache redis op timeout"},
		{name: "max below default", env: map[string]string{"RECOMMENDATION_MAX_LIMIT": "5"}, want: "invalid recommendation max limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.EqualError(t, err, tt.want)
		})
	}
}
