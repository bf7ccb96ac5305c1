// Package cache defines the shared surface of the eviction engines:
// the Cache interface, construction Options, hit/miss statistics,
// metrics hooks, and the error taxonomy.
//
// Design
//
//   - Engines: three fixed-capacity, in-memory key/value caches live in
//     sibling packages — lru (pure recency), lruk (frequency-gated
//     promotion into an LRU store), and lfu (pure frequency). All three
//     satisfy Cache[K, V].
//
//   - Storage: every engine hand-builds its index and ordering instead of
//     composing library containers. A chained hash table gives expected
//     O(1) lookup and an intrusive doubly linked list over the same nodes
//     encodes eviction order (head = keep longest, tail = next victim).
//     Nodes live in a slab and are addressed by stable integer indices,
//     so tail eviction is an O(1) slot release.
//
//   - Concurrency: engines are single-threaded by design. Hash-chain and
//     list mutations are multi-step; there is no internal locking because
//     per-node relinking is too fine-grained for a coarse lock to be cheap
//     and the shared head/tail pointers defeat finer-grained schemes.
//     Callers that need concurrent access must wrap a whole engine behind
//     one external mutex.
//
//   - Telemetry: OnHit/OnMiss/OnEvict are plain function values invoked
//     synchronously after the engine's own counters are updated. A panic
//     in a callback propagates to the caller; engine state is not rolled
//     back (the access already happened).
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; metrics/prom provides a Prometheus
//     adapter.
//
//   - Failure policy: configuration mistakes (non-positive capacity,
//     capacity shrink) surface as ErrConfiguration from the offending
//     call. Internal bookkeeping desync is an invariant violation whose
//     handling follows Options.Mode: Strict panics with *InvariantError,
//     Lenient logs through Options.Logf and continues best-effort.
//
// Basic usage
//
//	c, err := lru.New[string, string](1024, cache.Options[string, string]{})
//	if err != nil {
//	    // non-positive capacity
//	}
//	c.Put("a", "1")
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	for k, v := range c.All() { // head→tail, read-only
//	    _, _ = k, v
//	}
package cache
