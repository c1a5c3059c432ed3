package deltae

import (
	"math"
	"sync"

	"github.com/jmylchreest/irodori/pkg/colour"
)

// DefaultCacheCapacity is the bound on the result cache when Options does
// not say otherwise.
const DefaultCacheCapacity = 5000

// cacheKey identifies a computed distance: both LAB triples rounded to two
// decimals, plus the metric. The pair is kept in call order because CIE94
// is asymmetric; (a,b) and (b,a) are distinct keys.
type cacheKey struct {
	l1, a1, b1 int32
	l2, a2, b2 int32
	metric     Metric
}

func makeKey(c1, c2 colour.LAB, m Metric) cacheKey {
	return cacheKey{
		l1: round2(c1.L), a1: round2(c1.A), b1: round2(c1.B),
		l2: round2(c2.L), a2: round2(c2.A), b2: round2(c2.B),
		metric: m,
	}
}

// round2 scales to hundredths and rounds, so 12.345 and 12.3449 share a key.
func round2(v float64) int32 {
	return int32(math.Round(v * 100))
}

// resultCache is a bounded associative store with insertion-order (oldest
// first) eviction: an approximation of LRU that is cheap and sufficient for
// a repeating-query workload. Safe for concurrent use.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]float64

	// Insertion-order ring; when the cache is full, the key at head is
	// the oldest and gets evicted next.
	order []cacheKey
	head  int

	hits   uint64
	misses uint64
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		entries:  make(map[cacheKey]float64, capacity),
		order:    make([]cacheKey, 0, capacity),
	}
}

// get looks up a key, counting the hit or miss.
func (c *resultCache) get(k cacheKey) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// put stores a value, evicting the oldest entry when full.
func (c *resultCache) put(k cacheKey, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; exists {
		// Concurrent callers can race the same miss; keep one slot.
		c.entries[k] = v
		return
	}

	if len(c.order) < c.capacity {
		c.entries[k] = v
		c.order = append(c.order, k)
		return
	}

	oldest := c.order[c.head]
	delete(c.entries, oldest)
	c.order[c.head] = k
	c.head = (c.head + 1) % c.capacity
	c.entries[k] = v
}

// size returns the current entry count.
func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// counters returns accumulated hits and misses.
func (c *resultCache) counters() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
