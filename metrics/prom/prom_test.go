package prom_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/metrics/prom"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %q not gathered", name)
	return nil
}

func TestAdapter_CacheTraffic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := prom.New(reg, "lru", "test", prometheus.Labels{"app": "unit"})

	c, err := cache.New(cache.Options[string, int]{Capacity: 2, Metrics: m})
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3) // evicts a (capacity)
	c.Use("b")    // hit
	c.Use("a")    // miss
	c.RemoveHead()

	require.Equal(t, 1.0, family(t, reg, "lru_test_hits_total").GetMetric()[0].GetCounter().GetValue())
	require.Equal(t, 1.0, family(t, reg, "lru_test_misses_total").GetMetric()[0].GetCounter().GetValue())

	ev := family(t, reg, "lru_test_evictions_total")
	byReason := map[string]float64{}
	for _, metric := range ev.GetMetric() {
		var reason string
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == "reason" {
				reason = lp.GetValue()
			}
		}
		byReason[reason] = metric.GetCounter().GetValue()
	}
	require.Equal(t, map[string]float64{"capacity": 1, "head": 1}, byReason)

	size := family(t, reg, "lru_test_size_entries")
	require.Len(t, size.GetMetric(), 1)
	require.Equal(t, 1.0, size.GetMetric()[0].GetGauge().GetValue())

	capacity := family(t, reg, "lru_test_capacity_entries")
	require.Equal(t, 2.0, capacity.GetMetric()[0].GetGauge().GetValue())

	var app string
	for _, lp := range capacity.GetMetric()[0].GetLabel() {
		if lp.GetName() == "app" {
			app = lp.GetValue()
		}
	}
	require.Equal(t, "unit", app)
}

func TestAdapter_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = prom.New(reg, "lru", "dup", nil)
	require.Panics(t, func() { prom.New(reg, "lru", "dup", nil) })
}

func TestAdapter_ReasonSeriesPrecreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = prom.New(reg, "lru", "fresh", nil)
	n, err := testutil.GatherAndCount(reg, "lru_fresh_evictions_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
