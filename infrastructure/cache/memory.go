package cache

import (
	"context"
	"sync"
	"time"

	"github.com/seekr-labs/vecstore/domain/vector"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache implements vector.Cache with an in-process map. It is used in
// tests and in cacheless local runs where no Redis endpoint is configured.
// Entries expire lazily: an entry past its TTL is a miss even though it has
// not been physically evicted yet.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	prefix  string
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache with the given key prefix and TTL.
func NewMemoryCache(prefix string, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		prefix:  prefix,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Lookup returns the cached record and true on a hit.
func (c *MemoryCache) Lookup(_ context.Context, chunkID string) (vector.Record, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key(c.prefix, chunkID)]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return vector.Record{}, false, nil
	}

	record, err := decodeRecord(entry.data)
	if err != nil {
		return vector.Record{}, false, err
	}
	return record, true, nil
}

// Populate stores a record under its chunk ID with the configured TTL.
func (c *MemoryCache) Populate(_ context.Context, chunkID string, record vector.Record) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key(c.prefix, chunkID)] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate removes a cached record.
func (c *MemoryCache) Invalidate(_ context.Context, chunkID string) error {
	c.mu.Lock()
	delete(c.entries, key(c.prefix, chunkID))
	c.mu.Unlock()
	return nil
}

// Len returns the number of physically stored entries, including expired
// ones not yet evicted.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
