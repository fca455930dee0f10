package cache

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()              {}
func (NoopMetrics) Miss()             {}
func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Size(_, _ int)     {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Hits           uint64
	Misses         uint64
	Inserts        uint64
	Overwrites     uint64
	Evictions      uint64
	Removals       uint64
	ObserverPanics uint64
}
