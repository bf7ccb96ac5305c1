package store

// Head returns the keep-longest end of the order list (None when empty).
func (s *Store[K, V]) Head() Index { return s.head }

// Tail returns the next-to-evict end of the order list (None when empty).
func (s *Store[K, V]) Tail() Index { return s.tail }

// Next returns i's neighbor toward the tail.
func (s *Store[K, V]) Next(i Index) Index { return s.nodes[i].next }

// Prev returns i's neighbor toward the head.
func (s *Store[K, V]) Prev(i Index) Index { return s.nodes[i].prev }

// PushFront links an unlinked node at the head.
func (s *Store[K, V]) PushFront(i Index) {
	n := &s.nodes[i]
	n.prev = None
	n.next = s.head
	if s.head != None {
		s.nodes[s.head].prev = i
	}
	s.head = i
	if s.tail == None {
		s.tail = i
	}
}

// PushBack links an unlinked node at the tail.
func (s *Store[K, V]) PushBack(i Index) {
	n := &s.nodes[i]
	n.next = None
	n.prev = s.tail
	if s.tail != None {
		s.nodes[s.tail].next = i
	}
	s.tail = i
	if s.head == None {
		s.head = i
	}
}

// Unlink detaches a node from the order list. Removing the sole node
// leaves both head and tail at None; removing the tail moves tail to its
// former predecessor.
func (s *Store[K, V]) Unlink(i Index) {
	n := &s.nodes[i]
	if n.prev != None {
		s.nodes[n.prev].next = n.next
	} else {
		s.head = n.next
	}
	if n.next != None {
		s.nodes[n.next].prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = None, None
}

// MoveToFront promotes a linked node to the head in O(1).
func (s *Store[K, V]) MoveToFront(i Index) {
	if s.head == i {
		return
	}
	s.Unlink(i)
	s.PushFront(i)
}

// Reposition walks toward the head from i's current slot while pass
// reports that i may overtake the predecessor, then relinks i just after
// the first predecessor it may not pass (or at the head). The predicate
// defines the policy: pure recency is the always-true case (use
// MoveToFront for that), descending frequency passes predecessors whose
// count is not strictly greater.
//
// O(number of passed predecessors), not O(1).
func (s *Store[K, V]) Reposition(i Index, pass func(prev Index) bool) {
	at := s.nodes[i].prev
	if at == None || !pass(at) {
		return // already in place
	}
	for at != None && pass(at) {
		at = s.nodes[at].prev
	}
	s.Unlink(i)
	if at == None {
		s.PushFront(i)
		return
	}
	next := s.nodes[at].next
	s.nodes[i].prev = at
	s.nodes[i].next = next
	s.nodes[at].next = i
	if next != None {
		s.nodes[next].prev = i
	} else {
		s.tail = i
	}
}
