package cache

type constError string

func (e constError) Error() string { return string(e) }

// ErrConfiguration is returned for construction-time mistakes: a
// non-positive capacity or promotion threshold, or an attempt to shrink
// capacity. Engines wrap it with detail; match with errors.Is.
const ErrConfiguration = constError("cache: invalid configuration")

// InvariantError reports internal bookkeeping desync, e.g. a node missing
// from its expected hash bucket. In Strict mode it is the panic value at
// the point of detection.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "cache: invariant violation: " + e.Reason
}
