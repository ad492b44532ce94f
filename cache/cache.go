// ABOUTME: In-memory TTL cache for slow-moving catalog data
// ABOUTME: Expiry is checked on read; there is no background sweeper

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache holds values for a fixed TTL. Safe for concurrent use. Intended
// for reference data the backend rarely changes (subject catalog,
// platform counters), not for anything credential-related.
type Cache struct {
	store sync.Map
	ttl   time.Duration
}

func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.store.Store(key, entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	})
}

func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}
