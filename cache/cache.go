package cache

import "iter"

// Cache is a fixed-capacity, in-memory key/value cache. Keys are compared
// by == and appear at most once. Implementations are single-threaded;
// callers needing concurrency must guard a whole instance with one
// external mutex.
//
// Typical operation cost is expected O(1): one hash-chain walk plus a
// bounded amount of list relinking (the LFU engine additionally pays for
// repositioning within its frequency window).
type Cache[K comparable, V any] interface {
	// Get returns the value for key and a presence flag. Absence is a
	// normal outcome, never an error. A hit reorders the entry according
	// to the engine's policy; both outcomes update the hit/miss counters
	// and fire the matching telemetry callback.
	Get(key K) (V, bool)

	// Put inserts or updates key→value and returns the previous value for
	// the key, if any. An insert that overflows capacity evicts exactly
	// one entry, the current tail; the evicted pair is reported through
	// OnEvict, not through the return values.
	Put(key K, value V) (V, bool)

	// Peek returns the value for key without touching eviction order or
	// the hit/miss accounting.
	Peek(key K) (V, bool)

	// Remove deletes key if present and reports whether it was resident.
	Remove(key K) bool

	// Len returns the current number of resident entries.
	Len() int

	// Cap returns the maximum number of resident entries.
	Cap() int

	// SetCapacity raises the capacity to n. Capacity never shrinks;
	// n below the current capacity returns ErrConfiguration.
	SetCapacity(n int) error

	// Clear discards every resident entry. Statistics keep running.
	Clear()

	// Stats returns a snapshot of the running hit/miss/eviction counters.
	Stats() Stats

	// All returns the resident entries in eviction order, head (kept
	// longest) to tail (next victim). The sequence is lazy, finite and
	// restartable, and iterating it neither reorders entries nor touches
	// the hit/miss accounting.
	All() iter.Seq2[K, V]
}

// Stats is a snapshot of an engine's access counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRatio returns Hits/(Hits+Misses), or 0 when no accesses occurred.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
