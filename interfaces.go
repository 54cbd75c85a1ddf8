// interfaces.go: public interfaces for memotab
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

// TableStats provides statistics about a memo table.
type TableStats struct {
	// Size is the number of identities currently memoized
	Size int

	// Capacity is the number of slots in the table
	Capacity int

	// Gets is the number of lookups
	Gets uint64

	// Hits is the number of lookups that found their identity
	Hits uint64

	// Misses is the number of lookups that did not
	Misses uint64

	// Sets is the number of successful inserts and overwrites
	Sets uint64

	// Grows is the number of grow-and-rehash events
	Grows uint64

	// Clears is the number of successful Clear calls
	Clears uint64
}

// HitRatio returns the lookup hit ratio as a percentage (0-100).
// Returns 0.0 if no Get operations have been performed yet.
func (s TableStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// LoadFactor returns Size / Capacity.
func (s TableStats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity)
}

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

// Debug does nothing (no-op implementation).
func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

// Info does nothing (no-op implementation).
func (NoOpLogger) Info(msg string, keyvals ...interface{}) {}

// Warn does nothing (no-op implementation).
func (NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// Error does nothing (no-op implementation).
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	// This method must be very fast and allocation-free.
	Now() int64
}

// MetricsCollector defines an interface for collecting memo table metrics.
//
// A table is used by one goroutine at a time, but one collector is usually
// shared by every table of a process, so implementations must be safe for
// concurrent use.
type MetricsCollector interface {
	// RecordGet records a lookup with its latency and hit/miss result.
	RecordGet(latencyNs int64, hit bool)

	// RecordSet records an insert or overwrite with its latency,
	// including any grow-and-rehash it triggered.
	RecordSet(latencyNs int64)

	// RecordGrow records a grow-and-rehash from oldCapacity to newCapacity slots.
	RecordGrow(oldCapacity, newCapacity int)

	// RecordClear records a successful Clear.
	RecordClear()
}

// NoOpMetricsCollector is a metrics collector that does nothing.
// Tables configured with it skip latency measurement entirely.
type NoOpMetricsCollector struct{}

// RecordGet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordGet(latencyNs int64, hit bool) {}

// RecordSet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordSet(latencyNs int64) {}

// RecordGrow does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordGrow(oldCapacity, newCapacity int) {}

// RecordClear does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordClear() {}
