package analyzer

import (
	"hash/fnv"
	"strconv"
	"sync"
)

// Cache memoizes analysis results. It is owned and constructed by the
// caller, never ambient: the version string acts as an explicit
// cache-invalidation marker. Bump the version on any schema or threshold
// change and stale entries stop resolving.
type Cache struct {
	mu      sync.Mutex
	version string
	entries map[string]*Result
}

// NewCache creates a cache bound to a version string.
func NewCache(version string) *Cache {
	return &Cache{
		version: version,
		entries: make(map[string]*Result),
	}
}

// SetVersion bumps the cache version and clears all stale entries.
func (c *Cache) SetVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		c.version = version
		c.entries = make(map[string]*Result)
	}
}

func (c *Cache) key(rawText string) string {
	h := fnv.New64a()
	h.Write([]byte(c.version))
	h.Write([]byte{0})
	h.Write([]byte(rawText))
	return strconv.FormatUint(h.Sum64(), 16)
}

func (c *Cache) get(rawText string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[c.key(rawText)]
	return r, ok
}

func (c *Cache) put(rawText string, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(rawText)] = r
}
