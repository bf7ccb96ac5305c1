// Package lfu implements the pure-frequency eviction engine. Every node
// carries a monotonically increasing access counter and the order list is
// kept sorted by that counter, descending: head = most frequently used,
// tail = eviction victim.
//
// Among equal counts the most recently accessed node sits closest to the
// head, so the tail is the least recently accessed of the least
// frequently used. That secondary order is deliberate and stable.
package lfu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/IvanBrykalov/evictcache/cache"
	"github.com/IvanBrykalov/evictcache/internal/store"
	"github.com/IvanBrykalov/evictcache/internal/util"
)

// Cache is a fixed-capacity least-frequently-used cache. Not safe for
// concurrent use; wrap a whole instance behind one external mutex.
type Cache[K comparable, V any] struct {
	s        *store.Store[K, V]
	capacity int
	opt      cache.Options[K, V]

	hits      uint64
	misses    uint64
	evictions uint64
}

var _ cache.Cache[string, int] = (*Cache[string, int])(nil)

// New constructs an LFU cache holding at most capacity entries.
// A non-positive capacity returns cache.ErrConfiguration.
func New[K comparable, V any](capacity int, opt cache.Options[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", cache.ErrConfiguration, capacity)
	}
	if opt.Metrics == nil {
		opt.Metrics = cache.NoopMetrics{}
	}
	if opt.Hasher == nil {
		opt.Hasher = util.Fnv64a[K]
	}
	return &Cache[K, V]{
		s:        store.New[K, V](opt.Hasher, opt.Mode, opt.Logf),
		capacity: capacity,
		opt:      opt,
	}, nil
}

// Get returns the value for key. A hit increments the node's count and
// repositions it toward the head past every predecessor whose count is
// not strictly greater. Counters are updated, then the telemetry
// callback fires.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	i, ok := c.s.Lookup(key)
	if !ok {
		c.misses++
		c.opt.Metrics.Miss()
		if c.opt.OnMiss != nil {
			c.opt.OnMiss(key)
		}
		var zero V
		return zero, false
	}
	c.touch(i)
	v := c.s.Value(i)
	c.hits++
	c.opt.Metrics.Hit()
	if c.opt.OnHit != nil {
		c.opt.OnHit(key, v)
	}
	return v, true
}

// Put inserts or updates key→value and returns the previous value for
// the key, if any. An overwrite counts as an access and bumps the
// frequency. A new entry starts at frequency 1; when the cache is full
// the tail (lowest frequency) is evicted before the insert.
func (c *Cache[K, V]) Put(key K, value V) (V, bool) {
	if i, ok := c.s.Lookup(key); ok {
		prev := c.s.SetValue(i, value)
		c.touch(i)
		return prev, true
	}
	if c.s.Len() >= c.capacity {
		c.evictTail()
	}
	i := c.s.Insert(key, value)
	c.s.PushBack(i)
	c.reposition(i, c.s.Freq(i))
	c.opt.Metrics.Size(c.s.Len())
	var zero V
	return zero, false
}

// Peek returns the value for key without bumping its frequency or
// touching the hit/miss accounting.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if i, ok := c.s.Lookup(key); ok {
		return c.s.Value(i), true
	}
	var zero V
	return zero, false
}

// Remove deletes key if present and reports whether it was resident.
func (c *Cache[K, V]) Remove(key K) bool {
	i, ok := c.s.Lookup(key)
	if !ok {
		return false
	}
	c.s.Delete(i)
	c.opt.Metrics.Size(c.s.Len())
	return true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return c.s.Len() }

// Cap returns the maximum number of resident entries.
func (c *Cache[K, V]) Cap() int { return c.capacity }

// SetCapacity raises the capacity to n. Capacity never shrinks; n below
// the current capacity returns cache.ErrConfiguration.
func (c *Cache[K, V]) SetCapacity(n int) error {
	if n < c.capacity {
		return fmt.Errorf("%w: capacity may only grow (current %d, requested %d)",
			cache.ErrConfiguration, c.capacity, n)
	}
	c.capacity = n
	return nil
}

// Clear discards every resident entry. Counters keep running.
func (c *Cache[K, V]) Clear() {
	c.s.Clear()
	c.opt.Metrics.Size(0)
}

// Stats returns a snapshot of the running counters.
func (c *Cache[K, V]) Stats() cache.Stats {
	return cache.Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions}
}

// Freq reports the access count recorded for key (test and tuning hook).
func (c *Cache[K, V]) Freq(key K) (uint32, bool) {
	if i, ok := c.s.Lookup(key); ok {
		return c.s.Freq(i), true
	}
	return 0, false
}

// All returns the resident entries head→tail (most frequent first). The
// sequence is lazy and restartable; ranging it does not reorder entries,
// bump frequencies, or touch the hit/miss accounting.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := c.s.Head(); i != store.None; i = c.s.Next(i) {
			if !yield(c.s.Key(i), c.s.Value(i)) {
				return
			}
		}
	}
}

// String renders the entries head→tail, e.g. "[a=1, b=2]".
func (c *Cache[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for k, v := range c.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v=%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}

// touch records one access: bump the count, then restore descending
// order by walking toward the head. O(nodes with count >= the new
// count), which is the accepted tradeoff of this design.
func (c *Cache[K, V]) touch(i store.Index) {
	c.reposition(i, c.s.Bump(i))
}

func (c *Cache[K, V]) reposition(i store.Index, freq uint32) {
	c.s.Reposition(i, func(prev store.Index) bool {
		return freq >= c.s.Freq(prev)
	})
}

func (c *Cache[K, V]) evictTail() {
	t := c.s.Tail()
	if t == store.None {
		return
	}
	k, v := c.s.Key(t), c.s.Value(t)
	c.s.Delete(t)
	c.evictions++
	c.opt.Metrics.Evict(cache.EvictCapacity)
	if c.opt.OnEvict != nil {
		c.opt.OnEvict(k, v, cache.EvictCapacity)
	}
}
