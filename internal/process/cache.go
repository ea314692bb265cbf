package process

import (
	"sync"
	"time"
)

const (
	cacheTTL = 3 * time.Second
	cacheMax = 64
)

type cacheKey struct {
	pid        int32
	createTime int64
}

type cacheEntry struct {
	details   *Details
	expiresAt time.Time
}

type detailCache struct {
	mu    sync.Mutex
	items map[cacheKey]cacheEntry
}

var details = &detailCache{items: make(map[cacheKey]cacheEntry)}

func (c *detailCache) get(key cacheKey, now time.Time) (*Details, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if now.After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return entry.details, true
}

func (c *detailCache) put(key cacheKey, d *Details, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= cacheMax {
		for k, v := range c.items {
			if now.After(v.expiresAt) {
				delete(c.items, k)
			}
		}
		for len(c.items) >= cacheMax {
			for k := range c.items {
				delete(c.items, k)
				break
			}
		}
	}

	c.items[key] = cacheEntry{details: d, expiresAt: now.Add(cacheTTL)}
}
