package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a go-cache backed CacheService.
// defaultExpiration: TTL for Set calls with gocache.DefaultExpiration
// cleanupInterval: how often expired items are purged
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}
