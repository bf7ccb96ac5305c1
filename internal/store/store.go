// Package store provides the plumbing shared by every eviction engine:
// a node slab addressed by stable integer indices, a chained hash table
// over those indices, and an intrusive doubly linked list encoding
// eviction order (head = keep longest, tail = next victim).
//
// The store keeps the two structures mutually consistent; policy — which
// node goes where and when — belongs to the engines. Nothing here locks:
// the engines are specified single-threaded.
package store

import (
	"fmt"
	"log"

	"github.com/IvanBrykalov/evictcache/cache"
)

// Index addresses a node in a Store's slab. An index is stable for the
// lifetime of its node; None marks absence.
type Index = int32

// None is the null Index.
const None Index = -1

const (
	// initialTableSize is the bucket count of a fresh table. The table
	// doubles whenever the load factor would be exceeded on insert.
	initialTableSize = 16

	// maxTableSize caps table growth; past it chains simply lengthen.
	maxTableSize = 1 << 30

	// loadFactor is the entries-per-bucket ratio that triggers a resize.
	loadFactor = 0.75
)

// Store owns the slab, the hash table and the order list. Every resident
// node is reachable from exactly two places: its bucket chain and the
// list traversal.
type Store[K comparable, V any] struct {
	nodes []node[K, V]
	free  Index // head of the free-slot list, linked through node.chain

	buckets []Index // chain heads; len is a power of two
	count   int     // resident entries

	head Index
	tail Index

	hash func(K) uint64

	// fail is the invariant-violation sink: panic in Strict mode,
	// Options.Logf in Lenient mode.
	fail func(format string, args ...any)
}

// New constructs an empty store. mode and logf configure the
// invariant-violation sink per cache.Options semantics.
func New[K comparable, V any](hash func(K) uint64, mode cache.Mode, logf func(string, ...any)) *Store[K, V] {
	s := &Store[K, V]{
		buckets: emptyBuckets(initialTableSize),
		free:    None,
		head:    None,
		tail:    None,
		hash:    hash,
	}
	switch mode {
	case cache.Lenient:
		if logf == nil {
			logf = log.Printf
		}
		s.fail = logf
	default:
		s.fail = func(format string, args ...any) {
			panic(&cache.InvariantError{Reason: fmt.Sprintf(format, args...)})
		}
	}
	return s
}

// Len returns the number of resident entries.
func (s *Store[K, V]) Len() int { return s.count }

// Delete removes a resident node from both structures and releases its
// slab slot.
func (s *Store[K, V]) Delete(i Index) {
	s.unchain(i)
	s.Unlink(i)
	s.count--
	s.release(i)
}

// Clear discards every resident entry and shrinks the table back to its
// initial size. Slab memory is dropped wholesale.
func (s *Store[K, V]) Clear() {
	s.nodes = nil
	s.free = None
	s.buckets = emptyBuckets(initialTableSize)
	s.count = 0
	s.head = None
	s.tail = None
}

func emptyBuckets(n int) []Index {
	b := make([]Index, n)
	for i := range b {
		b[i] = None
	}
	return b
}
