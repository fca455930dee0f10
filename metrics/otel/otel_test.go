package otel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/IvanBrykalov/lrucache/cache"
	lruotel "github.com/IvanBrykalov/lrucache/metrics/otel"
)

func newTestMeterProvider(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s: unexpected data type %T", m.Name, m.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func gaugeValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	g, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "%s: unexpected data type %T", m.Name, m.Data)
	require.Len(t, g.DataPoints, 1)
	return g.DataPoints[0].Value
}

func TestAdapter_CacheTraffic(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	m, err := lruotel.New(mp, attribute.String("cache", "unit"))
	require.NoError(t, err)

	c, err := cache.New(cache.Options[int, string]{Capacity: 2, Metrics: m})
	require.NoError(t, err)

	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c") // evicts 1
	c.Use(2)
	c.Use(1)
	c.Use(9)
	c.RemoveHead() // evicts 3

	got := collect(t, reader)
	assert.Equal(t, int64(1), sumValue(t, got["lru.hits"]))
	assert.Equal(t, int64(2), sumValue(t, got["lru.misses"]))
	assert.Equal(t, int64(2), sumValue(t, got["lru.evictions"]))
	assert.Equal(t, int64(1), gaugeValue(t, got["lru.size"]))
	assert.Equal(t, int64(2), gaugeValue(t, got["lru.capacity"]))

	evictions := got["lru.evictions"].Data.(metricdata.Sum[int64])
	byReason := map[string]int64{}
	for _, dp := range evictions.DataPoints {
		reason, ok := dp.Attributes.Value("reason")
		require.True(t, ok)
		cacheName, ok := dp.Attributes.Value("cache")
		require.True(t, ok)
		assert.Equal(t, "unit", cacheName.AsString())
		byReason[reason.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"capacity": 1, "head": 1}, byReason)
}

func TestNew_NilProviderUsesGlobal(t *testing.T) {
	m, err := lruotel.New(nil)
	require.NoError(t, err)
	require.NotNil(t, m)

	// The global provider is a no-op until configured; recording must not panic.
	m.Hit()
	m.Miss()
	m.Evict(cache.EvictHead)
	m.Size(1, 2)
}
