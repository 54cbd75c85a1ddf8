// table.go: open-addressed identity memo table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

// Entry is one occupied slot: an identity and the memo id assigned to it.
// A slot whose Key is the zero Identity is empty.
type Entry struct {
	Key   Identity
	Value int64
}

// Table maps object identities to memo ids.
//
// The slot array always has a power-of-two length and is never more than
// two thirds full, so every probe sequence reaches an empty slot.
// A Table is meant for one traversal at a time and is not safe for
// concurrent use.
type Table struct {
	// Slot storage; allocated == len(slots) and mask == allocated-1
	slots     []Entry
	mask      uintptr
	used      int
	allocated int

	// Configuration (immutable after creation)
	initialCapacity int
	maxCapacity     int
	shrinkOnClear   bool
	logger          Logger
	metrics         MetricsCollector
	timeProvider    TimeProvider
	timed           bool

	// Statistics counters
	gets   uint64
	hits   uint64
	misses uint64
	sets   uint64
	grows  uint64
	clears uint64
}

// New creates an empty table with MinCapacity slots and default settings.
func New() (*Table, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an empty table with cfg.InitialCapacity slots.
// It fails if the configuration is invalid or the slot array cannot be allocated.
func NewWithConfig(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots, err := allocSlots("new", cfg.InitialCapacity, cfg.MaxCapacity)
	if err != nil {
		cfg.Logger.Error("memo table allocation failed", "capacity", cfg.InitialCapacity, "error", err)
		return nil, err
	}

	_, noop := cfg.MetricsCollector.(NoOpMetricsCollector)

	return &Table{
		slots:           slots,
		mask:            uintptr(cfg.InitialCapacity - 1), // #nosec G115 - capacity is a positive power of 2
		allocated:       cfg.InitialCapacity,
		initialCapacity: cfg.InitialCapacity,
		maxCapacity:     cfg.MaxCapacity,
		shrinkOnClear:   cfg.ShrinkOnClear,
		logger:          cfg.Logger,
		metrics:         cfg.MetricsCollector,
		timeProvider:    cfg.TimeProvider,
		timed:           !noop,
	}, nil
}

// Size returns the number of memoized identities.
func (t *Table) Size() int {
	return t.used
}

// Capacity returns the number of slots. Always a power of two, or 0 after Release.
func (t *Table) Capacity() int {
	return t.allocated
}

// LoadFactor returns Size / Capacity.
func (t *Table) LoadFactor() float64 {
	if t.allocated == 0 {
		return 0
	}
	return float64(t.used) / float64(t.allocated)
}

// Get returns the memo id stored for id.
// The zero identity is never found.
func (t *Table) Get(id Identity) (int64, bool) {
	var start int64
	if t.timed {
		start = t.timeProvider.Now()
	}

	var (
		value int64
		found bool
	)
	if !id.IsZero() && t.slots != nil {
		e := lookup(t.slots, t.mask, id)
		value, found = e.Value, e.Key != 0
	}

	t.gets++
	if found {
		t.hits++
	} else {
		t.misses++
	}

	if t.timed {
		t.metrics.RecordGet(t.timeProvider.Now()-start, found)
	}
	return value, found
}

// Has reports whether id is memoized.
func (t *Table) Has(id Identity) bool {
	if id.IsZero() || t.slots == nil {
		return false
	}
	return lookup(t.slots, t.mask, id).Key != 0
}

// Set stores memoID for id, overwriting any previous value.
//
// Inserting a new identity may grow the table first. If growth cannot
// allocate, Set returns an allocation error and the table is unchanged.
func (t *Table) Set(id Identity, memoID int64) error {
	if id.IsZero() {
		return NewErrSentinelKey("set")
	}
	if t.slots == nil {
		return NewErrTableReleased("set")
	}

	var start int64
	if t.timed {
		start = t.timeProvider.Now()
	}

	e := lookup(t.slots, t.mask, id)
	if e.Key == 0 {
		if overLoaded(t.used+1, t.allocated) {
			if err := t.grow(t.used + 1); err != nil {
				return err
			}
			e = lookup(t.slots, t.mask, id)
		}
		e.Key = id
		t.used++
	}
	e.Value = memoID
	t.sets++

	if t.timed {
		t.metrics.RecordSet(t.timeProvider.Now() - start)
	}
	return nil
}

// Clear forgets every identity and keeps the slot array.
//
// With ShrinkOnClear the table is reallocated at its initial capacity
// instead. If that allocation fails the table is cleared in place and the
// allocation error is returned.
func (t *Table) Clear() error {
	if t.slots == nil {
		return NewErrTableReleased("clear")
	}

	if t.shrinkOnClear && t.allocated > t.initialCapacity {
		slots, err := allocSlots("clear", t.initialCapacity, t.maxCapacity)
		if err != nil {
			t.logger.Warn("memo table shrink failed, clearing in place",
				"capacity", t.allocated, "error", err)
			clear(t.slots)
			t.used = 0
			return err
		}
		t.slots = slots
		t.mask = uintptr(t.initialCapacity - 1) // #nosec G115 - capacity is a positive power of 2
		t.allocated = t.initialCapacity
	} else {
		clear(t.slots)
	}

	t.used = 0
	t.clears++
	t.metrics.RecordClear()
	return nil
}

// Copy returns an independent table with the same entries and capacity.
// Identities are copied as tokens; the objects they name are not touched.
func (t *Table) Copy() (*Table, error) {
	if t.slots == nil {
		return nil, NewErrTableReleased("copy")
	}

	slots, err := allocSlots("copy", t.allocated, t.maxCapacity)
	if err != nil {
		t.logger.Error("memo table copy failed", "capacity", t.allocated, "error", err)
		return nil, err
	}
	copy(slots, t.slots)

	return &Table{
		slots:           slots,
		mask:            t.mask,
		used:            t.used,
		allocated:       t.allocated,
		initialCapacity: t.initialCapacity,
		maxCapacity:     t.maxCapacity,
		shrinkOnClear:   t.shrinkOnClear,
		logger:          t.logger,
		metrics:         t.metrics,
		timeProvider:    t.timeProvider,
		timed:           t.timed,
	}, nil
}

// Range calls fn for every entry in slot order until fn returns false.
// fn must not mutate the table.
func (t *Table) Range(fn func(id Identity, memoID int64) bool) {
	for i := range t.slots {
		e := &t.slots[i]
		if e.Key == 0 {
			continue
		}
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Entries returns a snapshot of all entries in slot order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, t.used)
	t.Range(func(id Identity, memoID int64) bool {
		out = append(out, Entry{Key: id, Value: memoID})
		return true
	})
	return out
}

// Stats returns table statistics.
func (t *Table) Stats() TableStats {
	return TableStats{
		Size:     t.used,
		Capacity: t.allocated,
		Gets:     t.gets,
		Hits:     t.hits,
		Misses:   t.misses,
		Sets:     t.sets,
		Grows:    t.grows,
		Clears:   t.clears,
	}
}

// Release drops the slot array. The table must not be used afterwards;
// Set, Clear and Copy report ErrCodeTableReleased.
func (t *Table) Release() {
	t.slots = nil
	t.mask = 0
	t.used = 0
	t.allocated = 0
}

// grow rehashes every entry into a new slot array sized for minUsed
// entries and swaps it in. On failure nothing is modified.
func (t *Table) grow(minUsed int) error {
	want := capacityFor(minUsed)
	newCap := want
	if newCap > t.maxCapacity {
		newCap = t.maxCapacity
	}
	if newCap <= t.allocated || overLoaded(minUsed, newCap) {
		err := NewErrAllocationFailed("grow", want, t.maxCapacity)
		t.logger.Error("memo table cannot grow", "used", t.used, "capacity", t.allocated, "requested", want, "error", err)
		return err
	}

	slots, err := allocSlots("grow", newCap, t.maxCapacity)
	if err != nil {
		t.logger.Error("memo table cannot grow", "used", t.used, "capacity", t.allocated, "requested", newCap, "error", err)
		return err
	}

	newMask := uintptr(newCap - 1) // #nosec G115 - capacity is a positive power of 2
	for i := range t.slots {
		old := &t.slots[i]
		if old.Key == 0 {
			continue
		}
		*lookup(slots, newMask, old.Key) = *old
	}

	oldCap := t.allocated
	t.slots = slots
	t.mask = newMask
	t.allocated = newCap
	t.grows++

	t.logger.Debug("memo table grown", "old_capacity", oldCap, "new_capacity", newCap, "used", t.used)
	t.metrics.RecordGrow(oldCap, newCap)
	return nil
}

// lookup returns the slot holding id, or the empty slot where id belongs.
//
// Probing starts at hash&mask and continues with i = 5*i + perturb + 1,
// shifting perturb right by perturbShift each step so high hash bits reach
// the index. Once perturb is exhausted the recurrence visits every slot,
// and the load bound guarantees at least one of them is empty.
func lookup(slots []Entry, mask uintptr, id Identity) *Entry {
	h := id.hash()
	i := h & mask
	e := &slots[i]
	if e.Key == 0 || e.Key == id {
		return e
	}
	for perturb := h; ; perturb >>= perturbShift {
		i = ((i << 2) + i + perturb + 1) & mask
		e = &slots[i]
		if e.Key == 0 || e.Key == id {
			return e
		}
	}
}

// overLoaded reports whether used entries exceed two thirds of capacity.
func overLoaded(used, capacity int) bool {
	return uint64(used)*3 >= uint64(capacity)*2 // #nosec G115 - both are non-negative
}

// capacityFor returns the power-of-two capacity grown to for used entries:
// four times used while small, twice used past largeTableThreshold.
func capacityFor(used int) int {
	factor := 4
	if used > largeTableThreshold {
		factor = 2
	}
	want := uint64(used) * uint64(factor) // #nosec G115 - used is non-negative
	c := uint64(MinCapacity)
	for c < want && c < DefaultMaxCapacity*2 {
		c <<= 1
	}
	return int(c) // #nosec G115 - bounded by 2*DefaultMaxCapacity
}

// allocSlots allocates an empty slot array, turning over-limit requests
// and runtime allocation panics into allocation errors.
func allocSlots(operation string, n, limit int) (slots []Entry, err error) {
	if n <= 0 || n > limit {
		return nil, NewErrAllocationFailed(operation, n, limit)
	}
	defer func() {
		if r := recover(); r != nil {
			slots = nil
			err = newErrAllocationPanic(operation, n, r)
		}
	}()
	return make([]Entry, n), nil
}
