// Package config provides application configuration.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultDimensions          = 1536
	DefaultSimilarityThreshold = 0.7
	DefaultCacheTTL            = 3600 * time.Second
	DefaultCachePrefix         = "vector:"
	DefaultSearchLimit         = 10
	DefaultLogLevel            = "INFO"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds resolved application configuration.
type AppConfig struct {
	dataDir             string
	dbURL               string
	redisAddr           string
	redisPassword       string
	redisDB             int
	dimensions          int
	similarityThreshold float64
	cacheTTL            time.Duration
	cachePrefix         string
	searchLimit         int
	logLevel            string
	logFormat           LogFormat
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		dataDir:             defaultDataDir(),
		dimensions:          DefaultDimensions,
		similarityThreshold: DefaultSimilarityThreshold,
		cacheTTL:            DefaultCacheTTL,
		cachePrefix:         DefaultCachePrefix,
		searchLimit:         DefaultSearchLimit,
		logLevel:            DefaultLogLevel,
		logFormat:           LogFormatPretty,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vecstore"
	}
	return filepath.Join(home, ".vecstore")
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL. When unset it defaults to a
// SQLite file inside the data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.dataDir, "vecstore.db")
}

// RedisAddr returns the Redis address, or "" when caching should fall back
// to the in-process store.
func (c AppConfig) RedisAddr() string { return c.redisAddr }

// RedisPassword returns the Redis password.
func (c AppConfig) RedisPassword() string { return c.redisPassword }

// RedisDB returns the Redis database number.
func (c AppConfig) RedisDB() int { return c.redisDB }

// Dimensions returns the required embedding length.
func (c AppConfig) Dimensions() int { return c.dimensions }

// SimilarityThreshold returns the default search cutoff.
func (c AppConfig) SimilarityThreshold() float64 { return c.similarityThreshold }

// CacheTTL returns the cache entry lifetime.
func (c AppConfig) CacheTTL() time.Duration { return c.cacheTTL }

// CachePrefix returns the namespace for cache keys.
func (c AppConfig) CachePrefix() string { return c.cachePrefix }

// SearchLimit returns the default search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WithDataDir returns a new config with the specified data directory.
func (c AppConfig) WithDataDir(dir string) AppConfig {
	c.dataDir = dir
	return c
}

// WithDBURL returns a new config with the specified database URL.
func (c AppConfig) WithDBURL(url string) AppConfig {
	c.dbURL = url
	return c
}

// WithRedisAddr returns a new config with the specified Redis address.
func (c AppConfig) WithRedisAddr(addr string) AppConfig {
	c.redisAddr = addr
	return c
}

// WithRedisPassword returns a new config with the specified Redis password.
func (c AppConfig) WithRedisPassword(pw string) AppConfig {
	c.redisPassword = pw
	return c
}

// WithRedisDB returns a new config with the specified Redis database number.
func (c AppConfig) WithRedisDB(db int) AppConfig {
	c.redisDB = db
	return c
}

// WithDimensions returns a new config with the specified dimensionality.
func (c AppConfig) WithDimensions(d int) AppConfig {
	if d > 0 {
		c.dimensions = d
	}
	return c
}

// WithSimilarityThreshold returns a new config with the specified threshold.
func (c AppConfig) WithSimilarityThreshold(t float64) AppConfig {
	if t >= -1 && t <= 1 {
		c.similarityThreshold = t
	}
	return c
}

// WithCacheTTL returns a new config with the specified cache TTL.
func (c AppConfig) WithCacheTTL(ttl time.Duration) AppConfig {
	if ttl > 0 {
		c.cacheTTL = ttl
	}
	return c
}

// WithCachePrefix returns a new config with the specified cache key prefix.
func (c AppConfig) WithCachePrefix(prefix string) AppConfig {
	c.cachePrefix = prefix
	return c
}

// WithSearchLimit returns a new config with the specified default limit.
func (c AppConfig) WithSearchLimit(n int) AppConfig {
	if n > 0 {
		c.searchLimit = n
	}
	return c
}

// WithLogLevel returns a new config with the specified log level.
func (c AppConfig) WithLogLevel(level string) AppConfig {
	c.logLevel = level
	return c
}

// WithLogFormat returns a new config with the specified log format.
func (c AppConfig) WithLogFormat(format LogFormat) AppConfig {
	c.logFormat = format
	return c
}
