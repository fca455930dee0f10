package cache

import (
	"log/slog"
)

// EvictReason explains why an entry left the cache without being removed
// by key.
type EvictReason int

const (
	// EvictCapacity: dropped by Add to bring the size back to capacity.
	EvictCapacity EvictReason = iota
	// EvictHead: dropped by an explicit RemoveHead call.
	EvictHead
)

// String returns a stable, lower-case label (used in events and metrics).
func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictHead:
		return "head"
	default:
		return "unknown"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries, capacity int)
}

// Options configures the cache behavior. Only Capacity is required;
// the remaining zero values are safe and defaulted in New/NewEngine:
//   - nil Metrics  => NoopMetrics
//   - nil Logger   => discard
//   - nil Observer => no events
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Must be in [1, MaxCapacity].
	Capacity int

	// Observer receives one Event per state change and per not-found
	// outcome, synchronously and in mutation order, while the cache lock
	// is held. It must not call back into the same Cache.
	Observer Observer[K, V]

	// OnEvict is called for every eviction (capacity or RemoveHead) under
	// the lock; keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)

	Metrics Metrics

	// Logger receives internal diagnostics, e.g. a recovered Observer panic.
	Logger *slog.Logger
}

func (o Options[K, V]) withDefaults() Options[K, V] {
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
