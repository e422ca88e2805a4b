package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v2"
)

// responseCache memoizes rendered responses per gradebook revision, so a
// mutation invalidates every entry without touching the cache.
type responseCache struct {
	cache   *ccache.Cache
	ttl     time.Duration
	metrics *metrics

	stopOnce sync.Once
}

func newResponseCache(ttl time.Duration, m *metrics) *responseCache {
	return &responseCache{
		cache:   ccache.New(ccache.Configure().MaxSize(256)),
		ttl:     ttl,
		metrics: m,
	}
}

func (c *responseCache) fetch(key string, revision uint64, load func() (interface{}, error)) (interface{}, error) {
	full := fmt.Sprintf("%s@%d", key, revision)

	if item := c.cache.Get(full); item != nil && !item.Expired() {
		c.metrics.observeCache(true)
		return item.Value(), nil
	}
	c.metrics.observeCache(false)

	value, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.Set(full, value, c.ttl)
	return value, nil
}

func (c *responseCache) stop() {
	c.stopOnce.Do(c.cache.Stop)
}
