// Package otel provides OpenTelemetry integration for memotab metrics.
//
// # Overview
//
// OTelMetricsCollector implements memotab.MetricsCollector with OpenTelemetry
// instruments. The package is a separate module so applications that do not
// export metrics do not pull in the OTEL dependencies.
//
// # Quick Start
//
//	import (
//	    "github.com/agilira/memotab"
//	    memootel "github.com/agilira/memotab/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	collector, err := memootel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pool, _ := memotab.NewPool(memotab.Config{MetricsCollector: collector})
//
// # Metrics Exposed
//
//   - memotab_get_latency_ns: histogram of lookup latencies
//   - memotab_set_latency_ns: histogram of insert latencies, rehash included
//   - memotab_get_hits_total / memotab_get_misses_total: lookup outcomes
//   - memotab_grows_total: grow-and-rehash events
//   - memotab_grow_capacity: slot capacity reached by each grow
//   - memotab_clears_total: successful Clear calls
//
// A high miss ratio is normal: every object a serializer emits is looked up
// once before it is memoized. memotab_grow_capacity shows how large memo
// tables get, which is the input for tuning Config.InitialCapacity and
// Config.MaxRetainedCapacity.
//
// Latencies are measured with the table's TimeProvider, which defaults to a
// cached clock; sub-microsecond operations often record as 0.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel
