package store

// bucket maps a key to its chain head slot for the current table size.
// Hashes are recomputed on demand — never cached in the node — so the
// resize pass stays correct by construction.
func (s *Store[K, V]) bucket(key K) int {
	return int(s.hash(key) & uint64(len(s.buckets)-1))
}

// Lookup walks the key's bucket chain and returns the first node with an
// equal key. O(chain length).
func (s *Store[K, V]) Lookup(key K) (Index, bool) {
	for i := s.buckets[s.bucket(key)]; i != None; i = s.nodes[i].chain {
		if s.nodes[i].key == key {
			return i, true
		}
	}
	return None, false
}

// Insert allocates a node for key→val and head-inserts it into its
// bucket chain, growing the table first if the insert would breach the
// load factor. The node is not yet linked into the order list; the
// caller decides its position.
func (s *Store[K, V]) Insert(key K, val V) Index {
	if float64(s.count+1) > loadFactor*float64(len(s.buckets)) {
		s.grow()
	}
	i := s.alloc(key, val)
	b := s.bucket(key)
	s.nodes[i].chain = s.buckets[b]
	s.buckets[b] = i
	s.count++
	return i
}

// unchain splices a node out of its bucket chain. A node absent from its
// expected bucket means the table and list have desynced; that is an
// invariant violation, not a normal miss.
func (s *Store[K, V]) unchain(i Index) {
	b := s.bucket(s.nodes[i].key)
	c := s.buckets[b]
	if c == i {
		s.buckets[b] = s.nodes[i].chain
		s.nodes[i].chain = None
		return
	}
	for c != None {
		next := s.nodes[c].chain
		if next == i {
			s.nodes[c].chain = s.nodes[i].chain
			s.nodes[i].chain = None
			return
		}
		c = next
	}
	s.fail("store: node %d (key %v) not found in bucket %d", i, s.nodes[i].key, b)
}

// grow doubles the table and rehashes every resident node in place,
// relinking chains only. Order-list links are untouched. Relative order
// within a chain is irrelevant, so nodes are simply head-inserted.
func (s *Store[K, V]) grow() {
	size := len(s.buckets) * 2
	if size > maxTableSize {
		return
	}
	old := s.buckets
	s.buckets = emptyBuckets(size)
	for _, c := range old {
		for c != None {
			next := s.nodes[c].chain
			b := s.bucket(s.nodes[c].key)
			s.nodes[c].chain = s.buckets[b]
			s.buckets[b] = c
			c = next
		}
	}
}

// TableSize reports the current bucket count (test hook).
func (s *Store[K, V]) TableSize() int { return len(s.buckets) }
