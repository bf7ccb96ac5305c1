package cache

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity — displaced as the policy-selected victim when an
	// insert overflowed the engine's capacity.
	EvictCapacity EvictReason = iota
	// EvictProvisional — an LRU-K provisional access counter displaced
	// from the bounded counter store before reaching the promotion
	// threshold.
	EvictProvisional
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()              {}
func (NoopMetrics) Miss()             {}
func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Size(entries int)  {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
