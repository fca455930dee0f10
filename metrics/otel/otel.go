// Package otel exports cache metrics through an OpenTelemetry MeterProvider.
package otel

import (
	"context"

	otelglobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/IvanBrykalov/lrucache/cache"
)

const instrumentationName = "github.com/IvanBrykalov/lrucache"

const (
	metricNameHits      = "lru.hits"
	metricNameMisses    = "lru.misses"
	metricNameEvictions = "lru.evictions"
	metricNameSize      = "lru.size"
	metricNameCapacity  = "lru.capacity"
)

// Adapter implements cache.Metrics on top of OTel instruments.
// Safe for concurrent use.
type Adapter struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
	size      metric.Int64Gauge
	capacity  metric.Int64Gauge

	attrs   metric.MeasurementOption
	reasons [2]metric.MeasurementOption
}

// New creates the instruments on mp (nil => the global MeterProvider).
// attrs are attached to every measurement.
func New(mp metric.MeterProvider, attrs ...attribute.KeyValue) (*Adapter, error) {
	if mp == nil {
		mp = otelglobal.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	hits, err := meter.Int64Counter(metricNameHits,
		metric.WithDescription("Use calls that found the key"),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64Counter(metricNameMisses,
		metric.WithDescription("Use calls on an absent key"),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, err
	}
	evictions, err := meter.Int64Counter(metricNameEvictions,
		metric.WithDescription("Entries dropped from the LRU end"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, err
	}
	size, err := meter.Int64Gauge(metricNameSize,
		metric.WithDescription("Number of resident entries"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, err
	}
	capacity, err := meter.Int64Gauge(metricNameCapacity,
		metric.WithDescription("Configured entry limit"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		size:      size,
		capacity:  capacity,
		attrs:     metric.WithAttributes(attrs...),
	}
	for _, r := range []cache.EvictReason{cache.EvictCapacity, cache.EvictHead} {
		withReason := append(append([]attribute.KeyValue(nil), attrs...), attribute.String("reason", r.String()))
		a.reasons[r] = metric.WithAttributes(withReason...)
	}
	return a, nil
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Add(context.Background(), 1, a.attrs) }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Add(context.Background(), 1, a.attrs) }

// Evict increments the eviction counter with a reason attribute.
func (a *Adapter) Evict(r cache.EvictReason) {
	opt := a.attrs
	if int(r) >= 0 && int(r) < len(a.reasons) {
		opt = a.reasons[r]
	}
	a.evictions.Add(context.Background(), 1, opt)
}

// Size records the entry and capacity gauges.
func (a *Adapter) Size(entries, capacity int) {
	ctx := context.Background()
	a.size.Record(ctx, int64(entries), a.attrs)
	a.capacity.Record(ctx, int64(capacity), a.attrs)
}

var _ cache.Metrics = (*Adapter)(nil)
