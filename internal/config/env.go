package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Variables carry a VECSTORE_ prefix (e.g. VECSTORE_DB_URL).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR (default: ~/.vecstore)
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/vecstore.db
	DBURL string `envconfig:"DB_URL"`

	// RedisAddr is the Redis host:port. Empty selects the in-process cache.
	// Env: REDIS_ADDR
	RedisAddr string `envconfig:"REDIS_ADDR"`

	// RedisPassword is the Redis auth password.
	// Env: REDIS_PASSWORD
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// RedisDB is the Redis database number.
	// Env: REDIS_DB (default: 0)
	RedisDB int `envconfig:"REDIS_DB" default:"0"`

	// Dimensions is the required embedding length.
	// Env: DIMENSIONS (default: 1536)
	Dimensions int `envconfig:"DIMENSIONS" default:"1536"`

	// SimilarityThreshold is the default search cutoff.
	// Env: SIMILARITY_THRESHOLD (default: 0.7)
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.7"`

	// CacheTTLSeconds is the cache entry lifetime in seconds.
	// Env: CACHE_TTL_SECONDS (default: 3600)
	CacheTTLSeconds int `envconfig:"CACHE_TTL_SECONDS" default:"3600"`

	// CachePrefix is the namespace for cache keys.
	// Env: CACHE_PREFIX (default: vector:)
	CachePrefix string `envconfig:"CACHE_PREFIX" default:"vector:"`

	// SearchLimit is the default search result limit.
	// Env: SEARCH_LIMIT (default: 10)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"10"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// LoadFromEnv reads configuration from VECSTORE_* environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("vecstore", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts environment configuration to an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.DataDir != "" {
		cfg = cfg.WithDataDir(e.DataDir)
	}
	if e.DBURL != "" {
		cfg = cfg.WithDBURL(e.DBURL)
	}
	cfg = cfg.WithRedisAddr(e.RedisAddr).
		WithRedisPassword(e.RedisPassword).
		WithRedisDB(e.RedisDB).
		WithDimensions(e.Dimensions).
		WithSimilarityThreshold(e.SimilarityThreshold).
		WithCachePrefix(e.CachePrefix).
		WithSearchLimit(e.SearchLimit).
		WithLogLevel(e.LogLevel)

	if e.CacheTTLSeconds > 0 {
		cfg = cfg.WithCacheTTL(time.Duration(e.CacheTTLSeconds) * time.Second)
	}
	if e.LogFormat == string(LogFormatJSON) {
		cfg = cfg.WithLogFormat(LogFormatJSON)
	}

	return cfg
}
