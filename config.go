// config.go: configuration for memotab
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for memo tables and pools.
type Config struct {
	// InitialCapacity is the number of slots a new or shrunk table holds.
	// Rounded up to a power of two, at least MinCapacity. Default: MinCapacity.
	InitialCapacity int

	// MaxCapacity is the largest slot array a table may allocate.
	// Rounded down to a power of two and clamped to DefaultMaxCapacity.
	// Growth beyond it fails with an allocation error. Default: DefaultMaxCapacity.
	MaxCapacity int

	// MaxRetainedCapacity is the largest table a Pool keeps after Put.
	// Larger tables are released instead. Default: DefaultMaxRetainedCapacity.
	MaxRetainedCapacity int

	// MaxIdle is the number of cleared tables a Pool keeps. Default: DefaultMaxIdle.
	MaxIdle int

	// ShrinkOnClear makes Clear reallocate the table at InitialCapacity
	// instead of zeroing the current slot array in place.
	ShrinkOnClear bool

	// Logger is used for debugging and monitoring.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for latency measurement.
	// If nil, a default implementation is used. Default: cached system time.
	TimeProvider TimeProvider

	// MetricsCollector is used for collecting operation metrics.
	// If nil, NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector
}

// Validate normalizes configuration parameters and applies defaults.
//
// This method is called by NewWithConfig, NewMemo and NewPool.
//
// Default values applied:
//   - InitialCapacity: MinCapacity if <= 0, else next power of two
//   - MaxCapacity: DefaultMaxCapacity if <= 0 or larger, else previous power of two
//   - MaxRetainedCapacity: DefaultMaxRetainedCapacity if <= 0
//   - MaxIdle: DefaultMaxIdle if <= 0
//   - Logger, TimeProvider, MetricsCollector: no-op or system defaults if nil
//
// Returns an error if MaxCapacity is below MinCapacity or below InitialCapacity.
func (c *Config) Validate() error {
	if c.InitialCapacity <= MinCapacity {
		c.InitialCapacity = MinCapacity
	} else if c.InitialCapacity > DefaultMaxCapacity {
		return NewErrInvalidCapacity("initial_capacity", c.InitialCapacity)
	} else {
		c.InitialCapacity = nextPowerOf2(c.InitialCapacity)
	}

	if c.MaxCapacity <= 0 || c.MaxCapacity > DefaultMaxCapacity {
		c.MaxCapacity = DefaultMaxCapacity
	} else {
		c.MaxCapacity = prevPowerOf2(c.MaxCapacity)
	}

	if c.MaxCapacity < MinCapacity {
		return NewErrInvalidCapacity("max_capacity", c.MaxCapacity)
	}
	if c.InitialCapacity > c.MaxCapacity {
		return NewErrInvalidConfig("initial_capacity exceeds max_capacity", map[string]interface{}{
			"initial_capacity": c.InitialCapacity,
			"max_capacity":     c.MaxCapacity,
		})
	}

	if c.MaxRetainedCapacity <= 0 {
		c.MaxRetainedCapacity = DefaultMaxRetainedCapacity
	}

	if c.MaxIdle <= 0 {
		c.MaxIdle = DefaultMaxIdle
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialCapacity:     MinCapacity,
		MaxCapacity:         DefaultMaxCapacity,
		MaxRetainedCapacity: DefaultMaxRetainedCapacity,
		MaxIdle:             DefaultMaxIdle,
		Logger:              NoOpLogger{},
		TimeProvider:        &systemTimeProvider{},
		MetricsCollector:    NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}

// nextPowerOf2 returns the next power of 2 greater than or equal to n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// prevPowerOf2 returns the largest power of 2 less than or equal to n.
func prevPowerOf2(n int) int {
	if n < 1 {
		return 0
	}
	p := nextPowerOf2(n)
	if p != n {
		p >>= 1
	}
	return p
}
