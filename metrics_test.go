// metrics_test.go: tests for metrics collection and logging
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"sync"
	"testing"
)

// mockMetricsCollector records every call for verification
type mockMetricsCollector struct {
	mu        sync.Mutex
	gets      int
	hits      int
	misses    int
	sets      int
	grows     [][2]int
	clears    int
	latencies []int64
}

func (m *mockMetricsCollector) RecordGet(latencyNs int64, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if hit {
		m.hits++
	} else {
		m.misses++
	}
	m.latencies = append(m.latencies, latencyNs)
}

func (m *mockMetricsCollector) RecordSet(latencyNs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.latencies = append(m.latencies, latencyNs)
}

func (m *mockMetricsCollector) RecordGrow(oldCapacity, newCapacity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grows = append(m.grows, [2]int{oldCapacity, newCapacity})
}

func (m *mockMetricsCollector) RecordClear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
}

// stepTimeProvider advances by a fixed step on every call
type stepTimeProvider struct {
	now  int64
	step int64
}

func (p *stepTimeProvider) Now() int64 {
	p.now += p.step
	return p.now
}

// recordingLogger keeps messages per level
type recordingLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{messages: map[string][]string{}}
}

func (l *recordingLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[level] = append(l.messages[level], msg)
}

func (l *recordingLogger) Debug(msg string, keyvals ...interface{}) { l.log("debug", msg) }
func (l *recordingLogger) Info(msg string, keyvals ...interface{})  { l.log("info", msg) }
func (l *recordingLogger) Warn(msg string, keyvals ...interface{})  { l.log("warn", msg) }
func (l *recordingLogger) Error(msg string, keyvals ...interface{}) { l.log("error", msg) }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages[level])
}

func TestMetricsCollector_Operations(t *testing.T) {
	metrics := &mockMetricsCollector{}
	tb := mustNew(t, Config{
		MetricsCollector: metrics,
		TimeProvider:     &stepTimeProvider{step: 10},
	})

	for i := 1; i <= 10; i++ {
		if err := tb.Set(synthetic(i), int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	tb.Get(synthetic(1))
	tb.Get(synthetic(1000))
	if err := tb.Clear(); err != nil {
		t.Fatal(err)
	}

	if metrics.sets != 10 {
		t.Errorf("expected 10 RecordSet calls, got %d", metrics.sets)
	}
	if metrics.gets != 2 || metrics.hits != 1 || metrics.misses != 1 {
		t.Errorf("unexpected get metrics: gets=%d hits=%d misses=%d", metrics.gets, metrics.hits, metrics.misses)
	}
	if metrics.clears != 1 {
		t.Errorf("expected 1 RecordClear, got %d", metrics.clears)
	}
	if len(metrics.grows) == 0 {
		t.Fatal("expected RecordGrow calls")
	}
	if g := metrics.grows[0]; g[0] != MinCapacity || g[1] <= g[0] {
		t.Errorf("unexpected first grow %v", g)
	}
	for _, l := range metrics.latencies {
		if l != 10 {
			t.Errorf("expected latency 10ns from step provider, got %d", l)
			break
		}
	}
}

func TestMetricsCollector_NoOpSkipsTiming(t *testing.T) {
	tp := &stepTimeProvider{step: 1}
	tb := mustNew(t, Config{TimeProvider: tp})

	_ = tb.Set(synthetic(1), 0)
	tb.Get(synthetic(1))

	if tp.now != 0 {
		t.Errorf("time provider consulted %d times with no-op metrics", tp.now)
	}
}

func TestLogger_GrowAndFailure(t *testing.T) {
	logger := newRecordingLogger()
	tb := mustNew(t, Config{MaxCapacity: 16, Logger: logger})

	// 16 slots hold at most 10 entries; the 11th needs a grow past the cap
	for i := 1; i <= 12; i++ {
		_ = tb.Set(synthetic(i), int64(i))
	}

	if logger.count("debug") == 0 {
		t.Error("expected growth to be logged at debug level")
	}
	if logger.count("error") == 0 {
		t.Error("expected failed growth to be logged at error level")
	}
}
