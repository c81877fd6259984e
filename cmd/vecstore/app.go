package main

import (
	"context"
	"os"
	"time"

	"github.com/seekr-labs/vecstore/application/service"
	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/seekr-labs/vecstore/infrastructure/cache"
	"github.com/seekr-labs/vecstore/infrastructure/persistence"
	"github.com/seekr-labs/vecstore/internal/config"
	"github.com/seekr-labs/vecstore/internal/database"
	"github.com/seekr-labs/vecstore/internal/log"
)

// app bundles the process-wide handles behind the vector service: the
// database connection and, when configured, the Redis client. Both are
// created once by newApp and released by Close on every exit path.
type app struct {
	cfg     config.AppConfig
	logger  *log.Logger
	db      database.Database
	redis   *cache.RedisCache
	service *service.Vector
}

// newApp wires config, logging, database, cache, and the vector service.
// On partial initialization failure every handle opened so far is released.
func newApp(ctx context.Context, envFile string) (*app, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}

	logger := log.Configure(cfg)

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, err
	}
	if db.IsPostgres() {
		if err := db.ConfigurePool(25, 5, 5*time.Minute); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	var (
		recordCache vector.Cache
		redisCache  *cache.RedisCache
	)
	if cfg.RedisAddr() != "" {
		redisCache, err = cache.NewRedisCache(ctx, cfg.RedisAddr(), cfg.RedisPassword(), cfg.RedisDB(), cfg.CachePrefix(), cfg.CacheTTL())
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		recordCache = redisCache
	} else {
		logger.Debug("no redis address configured, using in-process cache")
		recordCache = cache.NewMemoryCache(cfg.CachePrefix(), cfg.CacheTTL())
	}

	store := persistence.NewRecordStore(db, cfg.Dimensions())
	svc := service.NewVector(store, recordCache, cfg, logger.Slog())

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		redis:   redisCache,
		service: svc,
	}, nil
}

// Close releases the database and cache connections.
func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
}
