package store

// node is a slab slot. It is simultaneously a hash-chain element (chain)
// and an order-list element (prev/next); freq is policy metadata used by
// the frequency engine and ignored by the others.
//
// Free slots are threaded into a free list through chain, so allocation
// and release are O(1).
type node[K comparable, V any] struct {
	key K
	val V

	prev Index // order list: toward head
	next Index // order list: toward tail

	chain Index // next node in the same bucket (or next free slot)

	freq uint32 // cumulative access count (LFU only)
}

// alloc takes a slot from the free list or extends the slab. The node is
// initialized resident with frequency 1 and no links.
func (s *Store[K, V]) alloc(key K, val V) Index {
	var i Index
	if s.free != None {
		i = s.free
		s.free = s.nodes[i].chain
	} else {
		s.nodes = append(s.nodes, node[K, V]{})
		i = Index(len(s.nodes) - 1)
	}
	n := &s.nodes[i]
	n.key = key
	n.val = val
	n.prev, n.next, n.chain = None, None, None
	n.freq = 1
	return i
}

// release returns a slot to the free list. Key and value are zeroed so
// the slab does not pin evicted data.
func (s *Store[K, V]) release(i Index) {
	var zeroK K
	var zeroV V
	n := &s.nodes[i]
	n.key = zeroK
	n.val = zeroV
	n.prev, n.next = None, None
	n.chain = s.free
	s.free = i
}

// Key returns the key stored at i.
func (s *Store[K, V]) Key(i Index) K { return s.nodes[i].key }

// Value returns the value stored at i.
func (s *Store[K, V]) Value(i Index) V { return s.nodes[i].val }

// SetValue overwrites the value at i and returns the previous one.
func (s *Store[K, V]) SetValue(i Index, v V) V {
	prev := s.nodes[i].val
	s.nodes[i].val = v
	return prev
}

// Freq returns the access counter at i.
func (s *Store[K, V]) Freq(i Index) uint32 { return s.nodes[i].freq }

// Bump increments the access counter at i and returns the new count.
func (s *Store[K, V]) Bump(i Index) uint32 {
	s.nodes[i].freq++
	return s.nodes[i].freq
}
