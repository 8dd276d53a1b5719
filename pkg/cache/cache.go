package cache

import (
	"sync"
	"time"
)

// Cache is a small in-memory TTL cache safe for concurrent use. It is used
// for ephemeral bookkeeping (revoked token ids); conversation data is never
// cached — reads always go to the stores.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
}

type item struct {
	v   any
	exp time.Time // zero = no expiry
}

var (
	defaultCache *Cache
	once         sync.Once
)

// Default returns a process-wide cache instance.
func Default() *Cache {
	once.Do(func() {
		defaultCache = New(60 * time.Second)
	})
	return defaultCache
}

// New creates a cache whose janitor sweeps expired items every interval.
func New(interval time.Duration) *Cache {
	c := &Cache{items: make(map[string]item)}
	go c.janitor(interval)
	return c
}

// Get returns the value and whether it exists and has not expired.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now()
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !it.exp.IsZero() && it.exp.Before(now) {
		// lazy delete
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return it.v, true
}

// Set stores a value with TTL. ttl<=0 means no expiry.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item{v: v, exp: exp}
	c.mu.Unlock()
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *Cache) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now()
		c.mu.Lock()
		for k, it := range c.items {
			if !it.exp.IsZero() && it.exp.Before(now) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
