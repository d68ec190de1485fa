package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is a size-bounded LRU whose entries also expire after a TTL.
type Cache[K comparable, V any] struct {
	lruCache *lru.Cache[K, cacheItem[V]]
	ttl      time.Duration
	now      func() time.Time
}

func NewCache[K comparable, V any](size int, ttl time.Duration) (*Cache[K, V], error) {
	l, err := lru.New[K, cacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{lruCache: l, ttl: ttl, now: time.Now}, nil
}

func (c *Cache[K, V]) Set(key K, data V) {
	c.lruCache.Add(key, cacheItem[V]{data: data, expiresAt: c.now().Add(c.ttl)})
}

// Get reports false when the key is absent or expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	val, ok := c.lruCache.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(val.expiresAt) {
		c.lruCache.Remove(key)
		return zero, false
	}
	return val.data, true
}

func (c *Cache[K, V]) Delete(key K) {
	c.lruCache.Remove(key)
}

func (c *Cache[K, V]) Len() int {
	return c.lruCache.Len()
}
