// Package prom exports cache metrics to Prometheus.
package prom

import (
	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	evicts   *prometheus.CounterVec
	sizeEnt  prometheus.Gauge
	capacity prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
//
// New panics if the metrics are already registered on reg.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}
	}
	a := &Adapter{
		hits:   prometheus.NewCounter(prometheus.CounterOpts(opts("hits_total", "Use calls that found the key"))),
		misses: prometheus.NewCounter(prometheus.CounterOpts(opts("misses_total", "Use calls on an absent key"))),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts(opts("evictions_total", "Entries dropped from the LRU end, by reason")),
			[]string{"reason"},
		),
		sizeEnt:  prometheus.NewGauge(prometheus.GaugeOpts(opts("size_entries", "Number of resident entries"))),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts(opts("capacity_entries", "Configured entry limit"))),
	}
	// Pre-create both reason series so they are exported as 0 before the
	// first eviction.
	a.evicts.WithLabelValues(cache.EvictCapacity.String())
	a.evicts.WithLabelValues(cache.EvictHead.String())

	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt, a.capacity)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r cache.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size updates the entry and capacity gauges.
func (a *Adapter) Size(entries, capacity int) {
	a.sizeEnt.Set(float64(entries))
	a.capacity.Set(float64(capacity))
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
