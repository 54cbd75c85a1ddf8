// pool.go: reuse of cleared memo tables across serialization passes
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"sync"
)

// Pool keeps cleared tables so consecutive passes reuse their slot arrays.
// Pool is safe for concurrent use; the tables it hands out are not.
type Pool struct {
	mu     sync.Mutex
	config Config
	idle   []*Table
}

// NewPool creates a pool whose new tables are built from cfg.
func NewPool(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pool{config: cfg}, nil
}

// Get returns an empty table, reusing an idle one when available.
func (p *Pool) Get() (*Table, error) {
	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		t := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return t, nil
	}
	cfg := p.config
	p.mu.Unlock()

	return NewWithConfig(cfg)
}

// Put clears t and keeps it for reuse. Tables larger than
// MaxRetainedCapacity, or beyond MaxIdle idle tables, are released.
func (p *Pool) Put(t *Table) {
	if t == nil || t.slots == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if t.allocated > p.config.MaxRetainedCapacity || len(p.idle) >= p.config.MaxIdle {
		p.config.Logger.Debug("memo table dropped from pool",
			"capacity", t.allocated, "idle", len(p.idle))
		t.Release()
		return
	}

	if err := t.Clear(); err != nil {
		p.config.Logger.Warn("memo table not reused", "capacity", t.allocated, "error", err)
		t.Release()
		return
	}
	p.idle = append(p.idle, t)
}

// SetConfig replaces the pool configuration. Idle tables built under the
// old configuration are released.
func (p *Pool) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, t := range p.idle {
		t.Release()
		p.idle[i] = nil
	}
	p.idle = p.idle[:0]
	p.config = cfg

	cfg.Logger.Info("memo pool reconfigured",
		"initial_capacity", cfg.InitialCapacity,
		"max_capacity", cfg.MaxCapacity,
		"max_retained_capacity", cfg.MaxRetainedCapacity,
		"max_idle", cfg.MaxIdle,
		"shrink_on_clear", cfg.ShrinkOnClear)
	return nil
}

// Config returns the current pool configuration.
func (p *Pool) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// Idle returns the number of tables waiting for reuse.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}
