package memory

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCacheMiss signals the key is absent or expired.
var ErrCacheMiss = errors.New("memory cache: miss")

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is an in-process CacheProvider backed by a mutex-guarded map.
// Expired entries are dropped lazily on read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   func() time.Time
}

// NewCache returns an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		clock:   time.Now,
	}
}

func (c *Cache) Get(_ context.Context, key string) (any, error) {
	c.mu.RLock()
	item, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !item.expiresAt.IsZero() && c.clock().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	item := entry{value: value}
	if ttl > 0 {
		item.expiresAt = c.clock().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = item
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}
