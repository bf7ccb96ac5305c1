package cache

// Mode selects how an engine reacts to an internal invariant violation
// (hash chain and order list out of sync). It is passed explicitly at
// construction; there is no process-wide debug flag.
type Mode uint8

const (
	// Strict panics with *InvariantError at the point of detection.
	// This is the default: continuing on a desync risks silently
	// corrupting the linked structures in ways that surface as wrong
	// answers far from their cause.
	Strict Mode = iota

	// Lenient reports the violation through Options.Logf and continues
	// best-effort.
	Lenient
)

// Options configures an engine. The zero value is safe; defaults are
// applied at construction:
//   - nil Metrics => NoopMetrics
//   - nil Hasher  => util.Fnv64a (string, []byte, integer and Stringer keys)
//   - nil Logf    => log.Printf (only consulted in Lenient mode)
type Options[K comparable, V any] struct {
	// Mode selects the invariant-violation policy (Strict by default).
	Mode Mode

	// OnHit and OnMiss form the optional telemetry sink. They are invoked
	// synchronously on every Get outcome, after the engine's counters are
	// already updated. A panicking sink propagates to the Get caller;
	// engine state is not rolled back.
	OnHit  func(key K, value V)
	OnMiss func(key K)

	// OnEvict is called for every evicted entry with the reason the entry
	// was displaced. It runs synchronously inside the mutating call.
	OnEvict func(key K, value V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals; see metrics/prom for
	// a Prometheus adapter.
	Metrics Metrics

	// Logf is the sink for Lenient-mode invariant reports.
	Logf func(format string, args ...any)

	// Hasher overrides the key hash used by the engine's table. Required
	// for key types the default hasher does not support (e.g. structs).
	Hasher func(K) uint64
}
