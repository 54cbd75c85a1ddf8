// memo.go: traversal-side helper around a memo table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

// Memo drives a Table the way a serializer walking an object graph does:
// each object is looked up when entered, and assigned the next memo id
// (0, 1, 2, ... in first-seen order) when it is not yet known.
//
// Example:
//
//	memo, _ := memotab.NewMemo(memotab.DefaultConfig())
//	id, seen, err := memo.Visit(memotab.Of(obj))
//	switch {
//	case err != nil:
//	    return err
//	case seen:
//	    emitRef(id)
//	default:
//	    emitNew(id)
//	    recurse(obj)
//	}
type Memo struct {
	table *Table
}

// NewMemo creates a Memo over a fresh table built from cfg.
func NewMemo(cfg Config) (*Memo, error) {
	table, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Memo{table: table}, nil
}

// NewMemoFromTable wraps an existing table, for example one taken from a Pool.
func NewMemoFromTable(table *Table) *Memo {
	return &Memo{table: table}
}

// Table returns the underlying table.
func (m *Memo) Table() *Table {
	return m.table
}

// Len returns the number of memoized objects, which is also the next memo id.
func (m *Memo) Len() int {
	return m.table.Size()
}

// Lookup returns the memo id of an already visited object.
func (m *Memo) Lookup(id Identity) (int64, bool) {
	return m.table.Get(id)
}

// Remember assigns the next memo id to id and returns it.
// If id is already memoized its existing memo id is returned unchanged.
func (m *Memo) Remember(id Identity) (int64, error) {
	if memoID, found := m.table.Get(id); found {
		return memoID, nil
	}
	memoID := int64(m.table.Size())
	if err := m.table.Set(id, memoID); err != nil {
		return 0, err
	}
	return memoID, nil
}

// Visit looks id up and, if it is new, remembers it.
// seen is true when id was memoized before this call.
func (m *Memo) Visit(id Identity) (memoID int64, seen bool, err error) {
	if id.IsZero() {
		return 0, false, NewErrSentinelKey("visit")
	}
	if memoID, seen = m.table.Get(id); seen {
		return memoID, true, nil
	}
	memoID = int64(m.table.Size())
	if err = m.table.Set(id, memoID); err != nil {
		return 0, false, err
	}
	return memoID, false, nil
}

// Fork returns a Memo over a copy of the table for speculative traversal.
// Discarding the fork rolls back; Adopt commits it.
func (m *Memo) Fork() (*Memo, error) {
	table, err := m.table.Copy()
	if err != nil {
		return nil, err
	}
	return &Memo{table: table}, nil
}

// Adopt replaces m's table with the fork's table and releases the old one.
// The fork must not be used afterwards.
func (m *Memo) Adopt(fork *Memo) {
	if fork == nil || fork == m || fork.table == m.table {
		return
	}
	old := m.table
	m.table = fork.table
	fork.table = nil
	old.Release()
}

// Reset clears the table for the next independent pass.
func (m *Memo) Reset() error {
	return m.table.Clear()
}
