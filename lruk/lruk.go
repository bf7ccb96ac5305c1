// Package lruk implements the frequency-gated promotion engine (LRU-K).
// A bounded, LRU-ordered provisional store counts accesses per key; once
// a key's count reaches the threshold K it is promoted into a primary
// LRU cache. One-off accesses therefore never pollute the primary store.
//
// The provisional store is write-path only: Get reads the primary cache
// exclusively, and a key with partial provisional history is still a
// miss.
package lruk

import (
	"fmt"
	"iter"

	"github.com/IvanBrykalov/evictcache/cache"
	"github.com/IvanBrykalov/evictcache/lru"
)

// counter is a provisional entry: the latest value seen for the key and
// the number of Put calls it has accumulated.
type counter[V any] struct {
	val   V
	count int
}

// Cache is a fixed-capacity LRU-K cache. Not safe for concurrent use;
// wrap a whole instance behind one external mutex.
type Cache[K comparable, V any] struct {
	primary     *lru.Cache[K, V]
	provisional *lru.Cache[K, counter[V]]
	k           int
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)

// New constructs an LRU-K cache. capacity bounds the primary store,
// provisionalCapacity bounds the counter store (the two are independent),
// and k is the promotion threshold. Any non-positive argument returns
// cache.ErrConfiguration.
func New[K comparable, V any](capacity, provisionalCapacity, k int, opt cache.Options[K, V]) (*Cache[K, V], error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: promotion threshold must be positive, got %d", cache.ErrConfiguration, k)
	}
	if provisionalCapacity <= 0 {
		return nil, fmt.Errorf("%w: provisional capacity must be positive, got %d", cache.ErrConfiguration, provisionalCapacity)
	}
	primary, err := lru.New[K, V](capacity, opt)
	if err != nil {
		return nil, err
	}

	// The counter store carries no telemetry of its own: its hit/miss
	// traffic is an implementation detail. Its capacity evictions are
	// surfaced as provisional evictions on the outer sink.
	metrics := opt.Metrics
	if metrics == nil {
		metrics = cache.NoopMetrics{}
	}
	onEvict := opt.OnEvict
	provisional, err := lru.New[K, counter[V]](provisionalCapacity, cache.Options[K, counter[V]]{
		Mode:   opt.Mode,
		Logf:   opt.Logf,
		Hasher: opt.Hasher,
		OnEvict: func(key K, c counter[V], _ cache.EvictReason) {
			metrics.Evict(cache.EvictProvisional)
			if onEvict != nil {
				onEvict(key, c.val, cache.EvictProvisional)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{primary: primary, provisional: provisional, k: k}, nil
}

// Get reads the primary store only. The provisional counters are never
// consulted, so a key mid-way to promotion is a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) { return c.primary.Get(key) }

// Put records one access for key. The provisional count is incremented
// (starting at 1; inserting the counter may evict the store's own
// least-recently-touched entry). When the count reaches the current
// threshold the counter is dropped and key→value enters the primary
// store under the normal LRU insert contract, returning the key's
// previous primary value if it had one. Below the threshold nothing is
// returned.
func (c *Cache[K, V]) Put(key K, value V) (V, bool) {
	count := 1
	if prev, ok := c.provisional.Get(key); ok {
		count = prev.count + 1
	}
	if count >= c.k {
		c.provisional.Remove(key)
		return c.primary.Put(key, value)
	}
	c.provisional.Put(key, counter[V]{val: value, count: count})
	var zero V
	return zero, false
}

// Peek returns the value in the primary store without promoting it or
// touching the accounting.
func (c *Cache[K, V]) Peek(key K) (V, bool) { return c.primary.Peek(key) }

// Remove forgets the key entirely: the primary entry and any provisional
// history. Reports whether the key was resident in the primary store.
func (c *Cache[K, V]) Remove(key K) bool {
	c.provisional.Remove(key)
	return c.primary.Remove(key)
}

// Len returns the number of entries resident in the primary store.
func (c *Cache[K, V]) Len() int { return c.primary.Len() }

// Cap returns the primary store's capacity.
func (c *Cache[K, V]) Cap() int { return c.primary.Cap() }

// SetCapacity raises the primary store's capacity; it never shrinks.
func (c *Cache[K, V]) SetCapacity(n int) error { return c.primary.SetCapacity(n) }

// SetProvisionalCapacity raises the counter store's capacity; it never
// shrinks.
func (c *Cache[K, V]) SetProvisionalCapacity(n int) error {
	return c.provisional.SetCapacity(n)
}

// Threshold returns the current promotion threshold K.
func (c *Cache[K, V]) Threshold() int { return c.k }

// SetThreshold replaces the promotion threshold. Counts already
// accumulated are neither rescanned nor reset; they simply accrue
// against the new threshold at the key's next Put. A non-positive k
// returns cache.ErrConfiguration.
func (c *Cache[K, V]) SetThreshold(k int) error {
	if k <= 0 {
		return fmt.Errorf("%w: promotion threshold must be positive, got %d", cache.ErrConfiguration, k)
	}
	c.k = k
	return nil
}

// Pending reports the provisional access count for key without touching
// the counter store's order.
func (c *Cache[K, V]) Pending(key K) (int, bool) {
	if entry, ok := c.provisional.Peek(key); ok {
		return entry.count, true
	}
	return 0, false
}

// ProvisionalLen returns the number of keys currently gathering counts.
func (c *Cache[K, V]) ProvisionalLen() int { return c.provisional.Len() }

// Clear discards the primary entries and all provisional history.
// Counters keep running.
func (c *Cache[K, V]) Clear() {
	c.primary.Clear()
	c.provisional.Clear()
}

// Stats returns the primary store's counters: hits and misses reflect
// Get traffic, evictions count capacity displacements.
func (c *Cache[K, V]) Stats() cache.Stats { return c.primary.Stats() }

// All returns the primary store's entries head→tail (most recent first).
// Provisional counters are not entries and do not appear.
func (c *Cache[K, V]) All() iter.Seq2[K, V] { return c.primary.All() }

// String renders the primary entries head→tail.
func (c *Cache[K, V]) String() string { return c.primary.String() }
