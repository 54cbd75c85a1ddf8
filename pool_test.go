// pool_test.go: tests for table reuse across passes
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"sync"
	"testing"
)

func TestPool_ReusesClearedTables(t *testing.T) {
	pool, err := NewPool(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	tb, err := pool.Get()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 100; i++ {
		_ = tb.Set(synthetic(i), int64(i))
	}
	grown := tb.Capacity()
	pool.Put(tb)

	if pool.Idle() != 1 {
		t.Fatalf("expected 1 idle table, got %d", pool.Idle())
	}

	again, err := pool.Get()
	if err != nil {
		t.Fatal(err)
	}
	if again != tb {
		t.Error("expected the idle table to be reused")
	}
	if again.Size() != 0 {
		t.Errorf("reused table not cleared: size %d", again.Size())
	}
	if again.Capacity() != grown {
		t.Errorf("reused table lost its allocation: %d -> %d", grown, again.Capacity())
	}
	if pool.Idle() != 0 {
		t.Errorf("expected no idle tables, got %d", pool.Idle())
	}
}

func TestPool_DropsOversizedTables(t *testing.T) {
	pool, err := NewPool(Config{MaxRetainedCapacity: 64})
	if err != nil {
		t.Fatal(err)
	}

	tb, _ := pool.Get()
	for i := 1; i <= 100; i++ {
		_ = tb.Set(synthetic(i), int64(i))
	}
	pool.Put(tb)

	if pool.Idle() != 0 {
		t.Errorf("oversized table retained: idle=%d", pool.Idle())
	}
	if tb.Capacity() != 0 {
		t.Error("dropped table should be released")
	}
}

func TestPool_MaxIdle(t *testing.T) {
	pool, err := NewPool(Config{MaxIdle: 2})
	if err != nil {
		t.Fatal(err)
	}

	tables := make([]*Table, 4)
	for i := range tables {
		tables[i], _ = pool.Get()
	}
	for _, tb := range tables {
		pool.Put(tb)
	}

	if pool.Idle() != 2 {
		t.Errorf("expected 2 idle tables, got %d", pool.Idle())
	}
}

func TestPool_SetConfig(t *testing.T) {
	pool, err := NewPool(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	tb, _ := pool.Get()
	pool.Put(tb)

	if err := pool.SetConfig(Config{InitialCapacity: 64}); err != nil {
		t.Fatal(err)
	}
	if pool.Idle() != 0 {
		t.Errorf("idle tables should be dropped on reconfigure, got %d", pool.Idle())
	}

	fresh, err := pool.Get()
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Capacity() != 64 {
		t.Errorf("expected new initial capacity 64, got %d", fresh.Capacity())
	}

	if err := pool.SetConfig(Config{MaxCapacity: 4}); err == nil {
		t.Error("expected invalid config to be rejected")
	}
	if pool.Config().InitialCapacity != 64 {
		t.Error("rejected config must not replace the current one")
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool, err := NewPool(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pass := 0; pass < 50; pass++ {
				tb, err := pool.Get()
				if err != nil {
					t.Error(err)
					return
				}
				if tb.Size() != 0 {
					t.Errorf("pool handed out a dirty table: size %d", tb.Size())
				}
				for i := 1; i <= 20; i++ {
					_ = tb.Set(synthetic(i), int64(i))
				}
				pool.Put(tb)
			}
		}()
	}
	wg.Wait()

	if pool.Idle() > DefaultMaxIdle {
		t.Errorf("idle tables exceed MaxIdle: %d", pool.Idle())
	}
}

func TestPool_PutNilOrReleased(t *testing.T) {
	pool, _ := NewPool(DefaultConfig())
	pool.Put(nil)

	tb, _ := pool.Get()
	tb.Release()
	pool.Put(tb)

	if pool.Idle() != 0 {
		t.Errorf("released table should not be pooled, idle=%d", pool.Idle())
	}
}
