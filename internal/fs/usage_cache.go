package fs

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	usageCacheTTL     = 30 * time.Second
	usageCacheCleanup = 2 * time.Minute
)

// Usage is the regular-file count and byte total of a directory tree.
type Usage struct {
	Files int64
	Bytes int64
}

// UsageCache remembers recent tree measurements so reopening the delete
// dialog on a large try does not walk it twice. A nil cache is valid and
// caches nothing.
type UsageCache struct {
	items *cache.Cache
}

func NewUsageCache() *UsageCache {
	return &UsageCache{items: cache.New(usageCacheTTL, usageCacheCleanup)}
}

func (c *UsageCache) Get(path string) (Usage, bool) {
	if c == nil {
		return Usage{}, false
	}
	value, ok := c.items.Get(path)
	if !ok {
		return Usage{}, false
	}
	usage, ok := value.(Usage)
	return usage, ok
}

func (c *UsageCache) Set(path string, usage Usage) {
	if c == nil {
		return
	}
	c.items.SetDefault(path, usage)
}

func (c *UsageCache) Forget(path string) {
	if c == nil {
		return
	}
	c.items.Delete(path)
}
