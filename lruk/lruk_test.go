package lruk

import (
	"errors"
	"strconv"
	"testing"

	"github.com/IvanBrykalov/evictcache/cache"
)

func keysOf[K comparable, V any](c *Cache[K, V]) []K {
	var out []K
	for k := range c.All() {
		out = append(out, k)
	}
	return out
}

func wantKeys[K comparable](t *testing.T, got, want []K) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("order %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func put(c *Cache[int, string], keys ...int) {
	for _, k := range keys {
		c.Put(k, strconv.Itoa(k))
	}
}

func descending(from, to int) []int {
	var out []int
	for k := from; k >= to; k-- {
		out = append(out, k)
	}
	return out
}

// Three passes over ten keys with K=3, primary capacity 3 and a
// provisional store of 9. The counter store holds only nine keys, so the
// first pass displaces key 0's counter and the second pass displaces key
// 9's; both restart from 1. The third pass therefore promotes 8..1 in
// traversal order and leaves 0 one access short. The primary store keeps
// the last three promotions: 1 (most recent), 2, 3.
func TestLRUK_PromotionTrace(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](3, 9, 3, cache.Options[int, string]{})
	if err != nil {
		t.Fatal(err)
	}

	put(c, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	if c.Len() != 0 {
		t.Fatalf("first pass promoted %d keys, want none", c.Len())
	}

	put(c, descending(9, 0)...)
	if c.Len() != 0 {
		t.Fatalf("second pass promoted %d keys, want none", c.Len())
	}

	put(c, descending(8, 0)...)
	wantKeys(t, keysOf(c), []int{1, 2, 3})

	// Key 0's counter was displaced on the first pass and restarted on
	// the second, so it sits at 2 accesses, still unpromoted.
	if n, ok := c.Pending(0); !ok || n != 2 {
		t.Fatalf("Pending(0) = %d, %v; want 2, true", n, ok)
	}
	if c.ProvisionalLen() != 1 {
		t.Fatalf("ProvisionalLen = %d, want 1 (only key 0 left counting)", c.ProvisionalLen())
	}
}

// The same trace with one extra provisional slot suffers no counter
// displacement: all of 8..0 reach the threshold on the third pass and
// the primary store ends with the last three promotions, 0 at the head.
func TestLRUK_PromotionTraceRoomyProvisional(t *testing.T) {
	t.Parallel()

	c, err := New[int, string](3, 10, 3, cache.Options[int, string]{})
	if err != nil {
		t.Fatal(err)
	}
	put(c, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	put(c, descending(9, 0)...)
	put(c, descending(8, 0)...)
	wantKeys(t, keysOf(c), []int{0, 1, 2})

	// Key 9 got its two accesses on the first two passes and was skipped
	// by the third: still provisional.
	if n, ok := c.Pending(9); !ok || n != 2 {
		t.Fatalf("Pending(9) = %d, %v; want 2, true", n, ok)
	}
}

// Get reads the primary store only: a key with provisional history is a
// miss until promoted.
func TestLRUK_GetIgnoresProvisional(t *testing.T) {
	t.Parallel()

	c, err := New[string, string](4, 4, 2, cache.Options[string, string]{})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", "v1")
	if _, ok := c.Get("k"); ok {
		t.Fatal("key with one access must be a primary miss")
	}
	if st := c.Stats(); st.Misses != 1 {
		t.Fatalf("Misses = %d, want 1", st.Misses)
	}

	c.Put("k", "v2") // second access reaches K=2, promotes latest value
	if v, ok := c.Get("k"); !ok || v != "v2" {
		t.Fatalf("promoted Get = %q, %v; want \"v2\", true", v, ok)
	}
	if n, ok := c.Pending("k"); ok {
		t.Fatalf("promotion must drop the counter, still pending %d", n)
	}
}

// K=1 promotes on first touch; the provisional store stays empty.
func TestLRUK_ThresholdOne(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](2, 2, 1, cache.Options[string, int]{})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get = %d, %v; want 1, true", v, ok)
	}
	if c.ProvisionalLen() != 0 {
		t.Fatalf("ProvisionalLen = %d, want 0", c.ProvisionalLen())
	}
}

// Changing K does not rescan existing counters; they accrue against the
// threshold in force at the key's next Put.
func TestLRUK_SetThreshold(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](4, 4, 5, cache.Options[string, int]{})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", 1)
	c.Put("k", 2) // count 2, threshold 5

	if err := c.SetThreshold(2); err != nil {
		t.Fatal(err)
	}
	// Lowering the threshold promotes nothing retroactively.
	if _, ok := c.Peek("k"); ok {
		t.Fatal("threshold change must not promote existing counters")
	}
	if n, _ := c.Pending("k"); n != 2 {
		t.Fatalf("Pending = %d, want 2", n)
	}

	c.Put("k", 3) // count 3 >= 2: promoted now
	if v, ok := c.Peek("k"); !ok || v != 3 {
		t.Fatalf("Peek = %d, %v; want 3, true", v, ok)
	}

	if err := c.SetThreshold(0); !errors.Is(err, cache.ErrConfiguration) {
		t.Fatalf("SetThreshold(0) err = %v, want ErrConfiguration", err)
	}
	if c.Threshold() != 2 {
		t.Fatalf("failed SetThreshold must leave K at 2, got %d", c.Threshold())
	}
}

// A full provisional store displaces its own least-recently-touched
// counter, reported with reason EvictProvisional.
func TestLRUK_ProvisionalEviction(t *testing.T) {
	t.Parallel()

	var evicted []string
	c, err := New[string, int](4, 2, 3, cache.Options[string, int]{
		OnEvict: func(k string, v int, reason cache.EvictReason) {
			if reason != cache.EvictProvisional {
				t.Errorf("reason = %v, want EvictProvisional", reason)
			}
			evicted = append(evicted, k)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // displaces a's counter

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("evicted = %v, want [a]", evicted)
	}
	if _, ok := c.Pending("a"); ok {
		t.Fatal("a's counter must be gone")
	}

	// a starts over: three fresh accesses to promote under K=3.
	c.Put("a", 4)
	c.Put("a", 4)
	c.Put("a", 4)
	if _, ok := c.Peek("a"); !ok {
		t.Fatal("a must promote after three post-displacement accesses")
	}
}

// Remove forgets both the primary entry and the provisional history.
func TestLRUK_RemoveForgets(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](4, 4, 2, cache.Options[string, int]{})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", 1)
	if c.Remove("k") {
		t.Fatal("Remove must report false for a provisional-only key")
	}
	if _, ok := c.Pending("k"); ok {
		t.Fatal("Remove must drop the provisional counter")
	}

	c.Put("k", 1)
	c.Put("k", 2) // promoted
	if !c.Remove("k") {
		t.Fatal("Remove must report true for a resident key")
	}
	c.Put("k", 3)
	if _, ok := c.Peek("k"); ok {
		t.Fatal("a removed key must re-earn promotion from scratch")
	}
}

// Construction rules: all three sizes must be strictly positive.
func TestLRUK_ConfigErrors(t *testing.T) {
	t.Parallel()

	cases := []struct{ cap, prov, k int }{
		{0, 4, 2},
		{4, 0, 2},
		{4, 4, 0},
		{-1, 4, 2},
		{4, -1, 2},
		{4, 4, -1},
	}
	for _, tc := range cases {
		if _, err := New[int, int](tc.cap, tc.prov, tc.k, cache.Options[int, int]{}); !errors.Is(err, cache.ErrConfiguration) {
			t.Fatalf("New(%d,%d,%d) err = %v, want ErrConfiguration", tc.cap, tc.prov, tc.k, err)
		}
	}
}

// Primary capacity invariant holds across promotions.
func TestLRUK_CapacityInvariant(t *testing.T) {
	t.Parallel()

	c, err := New[int, int](3, 5, 2, cache.Options[int, int]{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		c.Put(i%11, i)
		if c.Len() > c.Cap() {
			t.Fatalf("Len %d exceeds Cap %d at step %d", c.Len(), c.Cap(), i)
		}
		if c.ProvisionalLen() > 5 {
			t.Fatalf("provisional holds %d, cap 5", c.ProvisionalLen())
		}
	}
}
