package content

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/qiushui/site-core/internal/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	cacheSize       = 256
	categoriesEntry = "\x00categories"
)

type cached struct {
	categories []string
	entries    []Entry
}

// scanCache memoizes directory scans for the revalidation interval. A nil
// cache reads the disk every time.
type scanCache struct {
	lru   *expirable.LRU[string, cached]
	group singleflight.Group

	// gen advances on every purge; a fill that straddles a purge is not stored.
	gen atomic.Uint64
}

func newScanCache(ttl time.Duration) *scanCache {
	if ttl <= 0 {
		return nil
	}
	return &scanCache{lru: expirable.NewLRU[string, cached](cacheSize, nil, ttl)}
}

// load returns the cached value for key or fills it with fill. Concurrent
// misses for the same key share one fill.
func (c *scanCache) load(key string, fill func() cached) cached {
	if c == nil {
		return fill()
	}
	if v, ok := c.lru.Get(key); ok {
		metrics.RecordCache(true)
		return v
	}
	metrics.RecordCache(false)

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.lru.Get(key); ok {
			return v, nil
		}
		gen := c.gen.Load()
		v := fill()
		if c.gen.Load() == gen {
			c.lru.Add(key, v)
		}
		return v, nil
	})
	return v.(cached)
}

func (c *scanCache) peek(key string) (cached, bool) {
	if c == nil {
		return cached{}, false
	}
	return c.lru.Peek(key)
}

func (c *scanCache) purge() {
	if c == nil {
		return
	}
	c.gen.Add(1)
	c.lru.Purge()
}
