package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/seekr-labs/vecstore/domain/vector"
)

// RedisCache implements vector.Cache backed by a Redis server.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, addr, password string, db int, prefix string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// Lookup returns the cached record and true on a hit.
func (c *RedisCache) Lookup(ctx context.Context, chunkID string) (vector.Record, bool, error) {
	data, err := c.client.Get(ctx, key(c.prefix, chunkID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return vector.Record{}, false, nil
		}
		return vector.Record{}, false, fmt.Errorf("cache get %s: %w", chunkID, err)
	}

	record, err := decodeRecord(data)
	if err != nil {
		return vector.Record{}, false, fmt.Errorf("cache decode %s: %w", chunkID, err)
	}
	return record, true, nil
}

// Populate stores a record under its chunk ID with the configured TTL.
func (c *RedisCache) Populate(ctx context.Context, chunkID string, record vector.Record) error {
	data, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", chunkID, err)
	}
	if err := c.client.Set(ctx, key(c.prefix, chunkID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", chunkID, err)
	}
	return nil
}

// Invalidate removes a cached record. Absent entries are not an error.
func (c *RedisCache) Invalidate(ctx context.Context, chunkID string) error {
	if err := c.client.Del(ctx, key(c.prefix, chunkID)).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", chunkID, err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
