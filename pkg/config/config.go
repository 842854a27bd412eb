package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	Cache          CacheConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

type CacheConfig struct {
	Driver string
	// VectorTTL applies to both user and product vectors.
	VectorTTL       time.Duration
	MemorySizeBytes int

	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration

	// Redis pool for the vector cache. OpTimeout bounds each read and write.
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisDialTimeout  time.Duration
	RedisOpTimeout    time.Duration
}

type RecommendationConfig struct {
	DefaultLimit   int
	MaxLimit       int
	BrowsingWindow int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	vectorTTL, err := getEnvInt("VECTOR_CACHE_TTL_SECONDS", 86400)
	if err != nil || vectorTTL <= 0 {
		return nil, errors.New("invalid vector cache ttl")
	}

	memorySize, err := getEnvInt("VECTOR_CACHE_MEMORY_BYTES", 32*1024*1024)
	if err != nil {
		return nil, errors.New("invalid vector cache memory size")
	}

	breakerThreshold, err := getEnvInt("VECTOR_CACHE_BREAKER_FAILURES", 5)
	if err != nil || breakerThreshold <= 0 {
		return nil, errors.New("invalid vector cache breaker threshold")
	}

	breakerTimeout, err := getEnvDuration("VECTOR_CACHE_BREAKER_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, errors.New("invalid vector cache breaker timeout")
	}

	redisPoolSize, err := getEnvInt("VECTOR_CACHE_REDIS_POOL_SIZE", 20)
	if err != nil || redisPoolSize <= 0 {
		return nil, errors.New("invalid vector cache redis pool size")
	}

	redisMinIdle, err := getEnvInt("VECTOR_CACHE_REDIS_MIN_IDLE", 4)
	if err != nil || redisMinIdle < 0 || redisMinIdle > redisPoolSize {
		return nil, errors.New("invalid vector cache redis min idle")
	}

	redisDialTimeout, err := getEnvDuration("VECTOR_CACHE_REDIS_DIAL_TIMEOUT", 2*time.Second)
	if err != nil || redisDialTimeout <= 0 {
		return nil, errors.New("invalid vector cache redis dial timeout")
	}

	redisOpTimeout, err := getEnvDuration("VECTOR_CACHE_REDIS_OP_TIMEOUT", 250*time.Millisecond)
	if err != nil || redisOpTimeout <= 0 {
		return nil, errors.New("invalid vector cache redis op timeout")
	}

	requestTimeout, err := getEnvDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, errors.New("invalid request timeout")
	}

	defaultLimit, err := getEnvInt("RECOMMENDATION_DEFAULT_LIMIT", 10)
	if err != nil || defaultLimit <= 0 {
		return nil, errors.New("invalid recommendation default limit")
	}

	maxLimit, err := getEnvInt("RECOMMENDATION_MAX_LIMIT", 50)
	if err != nil || maxLimit < defaultLimit {
		return nil, errors.New("invalid recommendation max limit")
	}

	browsingWindow, err := getEnvInt("RECOMMENDATION_BROWSING_WINDOW", 10)
	if err != nil || browsingWindow <= 0 {
		return nil, errors.New("invalid recommendation browsing window")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MyMarket API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: requestTimeout,
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "my_market"),
			SSLMode:     getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate: getEnv("DB_AUTO_MIGRATE", "false") == "true",
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Cache: CacheConfig{
			Driver:                  getEnv("VECTOR_CACHE_DRIVER", CacheDriverRedis),
			VectorTTL:               time.Duration(vectorTTL) * time.Second,
			MemorySizeBytes:         memorySize,
			BreakerFailureThreshold: uint32(breakerThreshold),
			BreakerOpenTimeout:      breakerTimeout,
			RedisPoolSize:           redisPoolSize,
			RedisMinIdleConns:       redisMinIdle,
			RedisDialTimeout:        redisDialTimeout,
			RedisOpTimeout:          redisOpTimeout,
		},
		Recommendation: RecommendationConfig{
			DefaultLimit:   defaultLimit,
			MaxLimit:       maxLimit,
			BrowsingWindow: browsingWindow,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Cache.Driver != CacheDriverRedis && cfg.Cache.Driver != CacheDriverMemory {
		return nil, errors.New("unknown vector cache driver")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(val)
}
