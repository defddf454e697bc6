package engine

import "github.com/formulaengine/core/ast"

// cacheEntry is the unit cached per expression text: the parsed AST and,
// once computed, its extracted dependency set. Parse and
// ExtractDependencies share this single entry and its single eviction
// slot rather than keeping two independently-evicted caches, per §3's
// "share the same keyspace and [are] evicted in lockstep."
type cacheEntry struct {
	node    ast.Node
	deps    map[string]struct{}
	hasDeps bool
}

// fifoCache is a bounded, FIFO-eviction cache of cacheEntry keyed by
// expression text. A maxSize of 0 disables eviction (unbounded). Hit/miss
// counters feed the single cache_stats contract of §4.6.
type fifoCache struct {
	maxSize int
	order   []string
	data    map[string]*cacheEntry
	hits    int
	misses  int
}

func newFIFOCache(maxSize int) *fifoCache {
	return &fifoCache{maxSize: maxSize, data: make(map[string]*cacheEntry)}
}

// lookup returns the entry for key, if any, without touching the
// hit/miss counters — callers record a hit or miss themselves once they
// know whether the part of the entry they needed was actually present.
func (c *fifoCache) lookup(key string) (*cacheEntry, bool) {
	e, ok := c.data[key]
	return e, ok
}

func (c *fifoCache) recordHit()  { c.hits++ }
func (c *fifoCache) recordMiss() { c.misses++ }

// put inserts entry for key, evicting the oldest entry first if the
// cache is at capacity. Re-inserting an existing key (e.g. to attach a
// freshly-computed dependency set to an already-cached AST) updates in
// place and does not disturb eviction order.
func (c *fifoCache) put(key string, entry *cacheEntry) {
	if _, exists := c.data[key]; exists {
		c.data[key] = entry
		return
	}
	if c.maxSize > 0 && len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.order = append(c.order, key)
	c.data[key] = entry
}

func (c *fifoCache) clear() {
	c.order = nil
	c.data = make(map[string]*cacheEntry)
	c.hits = 0
	c.misses = 0
}

// CacheStats reports the shared AST/dependency cache's size, cumulative
// hits/misses, and derived hit rate, per `cache_stats` in §4.6.
type CacheStats struct {
	Size    int
	Hits    int
	Misses  int
	HitRate float64
}

func (c *fifoCache) stats() CacheStats {
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return CacheStats{Size: len(c.data), Hits: c.hits, Misses: c.misses, HitRate: rate}
}
