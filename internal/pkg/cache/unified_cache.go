package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// UnifiedCache is a typed wrapper over go-cache with sliding expiration.
type UnifiedCache[T any] struct {
	store  *gocache.Cache
	ttl    time.Duration
	name   string
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewUnifiedCache creates a cache whose entries expire ttl after their last use.
func NewUnifiedCache[T any](ttl time.Duration, name string, logger *zap.Logger) *UnifiedCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &UnifiedCache[T]{
		store:  gocache.New(ttl, ttl/2),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
	c.store.OnEvicted(func(key string, _ interface{}) {
		c.logger.Debug("Cache evicted", zap.String("cache", c.name), zap.String("key", key))
	})
	return c
}

// Set stores an item in the cache with the given key
func (c *UnifiedCache[T]) Set(key string, value T) {
	c.store.SetDefault(key, value)
	c.sets.Add(1)
	c.logger.Debug("Cache set",
		zap.String("cache", c.name),
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}

// Get retrieves an item from the cache
func (c *UnifiedCache[T]) Get(key string) (T, bool) {
	raw, found := c.store.Get(key)
	if !found {
		c.misses.Add(1)
		var zero T
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		c.misses.Add(1)
		var zero T
		return zero, false
	}
	c.hits.Add(1)
	return value, true
}

// GetOrCreate returns the entry for key, creating it with create on a miss.
// Hits extend the entry's lifetime. Concurrent creators agree on one value.
func (c *UnifiedCache[T]) GetOrCreate(key string, create func() T) T {
	if value, ok := c.Get(key); ok {
		c.store.SetDefault(key, value)
		return value
	}
	value := create()
	if err := c.store.Add(key, value, gocache.DefaultExpiration); err != nil {
		if existing, ok := c.Get(key); ok {
			return existing
		}
		c.store.SetDefault(key, value)
	}
	c.sets.Add(1)
	c.logger.Debug("Cache created entry", zap.String("cache", c.name), zap.String("key", key))
	return value
}

// Delete removes an item from the cache
func (c *UnifiedCache[T]) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache
func (c *UnifiedCache[T]) Clear() {
	c.store.Flush()
	c.logger.Info("Cache cleared", zap.String("cache", c.name))
}

// GetMetrics returns current cache metrics
func (c *UnifiedCache[T]) GetMetrics() CacheMetrics {
	return CacheMetrics{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
	}
}

// Size returns the number of items in the cache, expired ones included
// until the next cleanup.
func (c *UnifiedCache[T]) Size() int {
	return c.store.ItemCount()
}
