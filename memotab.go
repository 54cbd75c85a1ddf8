// Package memotab provides an identity-keyed memo table for object-graph
// serializers.
//
// The table maps the identity (address) of an object to the memo id a
// serializer assigned to it the first time it was visited, so later visits
// can emit a back-reference instead of recursing into a cycle.
//
// Example usage:
//
//	table, err := memotab.New()
//	if err != nil {
//		return err
//	}
//	id := memotab.Of(node)
//	if memoID, found := table.Get(id); found {
//		emitRef(memoID)
//	} else if err := table.Set(id, int64(table.Size())); err != nil {
//		return err
//	}
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package memotab

const (
	// Version of the memotab library
	Version = "v0.1.0-dev"

	// MinCapacity is the smallest slot array a table ever holds
	MinCapacity = 8

	// DefaultMaxCapacity bounds slot allocations (entries, not bytes)
	DefaultMaxCapacity = 1 << 30

	// DefaultMaxRetainedCapacity is the largest table a Pool keeps for reuse
	DefaultMaxRetainedCapacity = 1 << 16

	// DefaultMaxIdle is the number of cleared tables a Pool keeps
	DefaultMaxIdle = 8

	// perturbShift is how many high hash bits are folded in per probe step
	perturbShift = 5

	// largeTableThreshold switches growth from x4 to x2
	largeTableThreshold = 50_000
)
