// collector.go: OpenTelemetry implementation of memotab.MetricsCollector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/memotab"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements memotab.MetricsCollector using OpenTelemetry.
//
// One collector is typically shared by every memo table in a process.
// The underlying OTEL instruments are safe for concurrent use.
type OTelMetricsCollector struct {
	getLatency   metric.Int64Histogram // Get latency
	setLatency   metric.Int64Histogram // Set latency, including rehash
	hits         metric.Int64Counter
	misses       metric.Int64Counter
	grows        metric.Int64Counter
	growCapacity metric.Int64Histogram // capacity reached by each grow
	clears       metric.Int64Counter
}

// Options for configuring OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/memotab"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a new OpenTelemetry metrics collector.
//
// The collector creates the following instruments:
//   - memotab_get_latency_ns, memotab_set_latency_ns (Int64Histogram)
//   - memotab_get_hits_total, memotab_get_misses_total (Int64Counter)
//   - memotab_grows_total (Int64Counter), memotab_grow_capacity (Int64Histogram)
//   - memotab_clears_total (Int64Counter)
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{
		MeterName: "github.com/agilira/memotab",
	}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.getLatency, err = meter.Int64Histogram(
		"memotab_get_latency_ns",
		metric.WithDescription("Latency of memo table lookups in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.setLatency, err = meter.Int64Histogram(
		"memotab_set_latency_ns",
		metric.WithDescription("Latency of memo table inserts in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.hits, err = meter.Int64Counter(
		"memotab_get_hits_total",
		metric.WithDescription("Lookups that found a memoized identity"),
	)
	if err != nil {
		return nil, err
	}

	collector.misses, err = meter.Int64Counter(
		"memotab_get_misses_total",
		metric.WithDescription("Lookups for identities not yet memoized"),
	)
	if err != nil {
		return nil, err
	}

	collector.grows, err = meter.Int64Counter(
		"memotab_grows_total",
		metric.WithDescription("Grow-and-rehash events"),
	)
	if err != nil {
		return nil, err
	}

	collector.growCapacity, err = meter.Int64Histogram(
		"memotab_grow_capacity",
		metric.WithDescription("Slot capacity reached by each grow"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	collector.clears, err = meter.Int64Counter(
		"memotab_clears_total",
		metric.WithDescription("Successful Clear calls"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordGet records a lookup latency and its hit/miss outcome.
func (c *OTelMetricsCollector) RecordGet(latencyNs int64, hit bool) {
	ctx := context.Background()
	c.getLatency.Record(ctx, latencyNs)
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordSet records an insert latency.
func (c *OTelMetricsCollector) RecordSet(latencyNs int64) {
	c.setLatency.Record(context.Background(), latencyNs)
}

// RecordGrow records a grow-and-rehash event.
func (c *OTelMetricsCollector) RecordGrow(oldCapacity, newCapacity int) {
	ctx := context.Background()
	c.grows.Add(ctx, 1)
	c.growCapacity.Record(ctx, int64(newCapacity))
}

// RecordClear records a successful Clear.
func (c *OTelMetricsCollector) RecordClear() {
	c.clears.Add(context.Background(), 1)
}

// Compile-time interface check
var _ memotab.MetricsCollector = (*OTelMetricsCollector)(nil)
