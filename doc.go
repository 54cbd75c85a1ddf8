// Package memotab provides the identity-keyed memo table an object-graph
// serializer uses to recognise objects it has already emitted.
//
// # Overview
//
// A serializer walking an arbitrary, possibly cyclic, object graph needs to
// know whether the object it is entering was seen before. memotab maps the
// identity of an object (its address, never its value) to the small integer
// memo id assigned when it was first seen. A hit means "emit a
// back-reference"; a miss means "emit the object, recurse, remember it".
//
// # Identities
//
// Keys are Identity tokens built with Of or OfPointer:
//
//	id := memotab.Of(node) // *Node -> Identity
//
// An Identity is compared bit-for-bit and never dereferenced. It is a
// borrowed, non-owning handle: the table does not keep objects alive and
// never frees them. Callers keep every memoized object reachable for as
// long as any table, or copy of a table, holds its identity. The zero
// Identity marks empty slots; Of(nil) is the only way to produce it.
//
// # Table
//
// Table is an open-addressed hash table over a power-of-two slot array:
//
//	table, err := memotab.New()
//	if err != nil {
//	    return err
//	}
//	if err := table.Set(id, int64(table.Size())); err != nil {
//	    return err // allocation failure; table unchanged
//	}
//	memoID, found := table.Get(id)
//
// Probing starts at hash&mask and perturbs the index with successively
// higher bits of the hash, so identities that collide in their low bits
// still spread out. Lookup and insertion share the same probe routine.
//
// The table grows before it becomes more than two thirds full: the new
// capacity is the smallest power of two holding four times the entries
// (twice past 50,000 entries). Growth builds the new slot array completely
// and swaps it in, so a failed allocation leaves the table untouched.
//
// Clear zeroes the slots in place, or reallocates at the initial capacity
// when Config.ShrinkOnClear is set. Copy produces a fully independent table
// sharing only the identity tokens.
//
// # Memo
//
// Memo wraps a Table with the serializer's calling pattern. Visit assigns ids
// 0, 1, 2, ... in first-seen order, and Fork / Adopt support speculative
// emission of a sub-graph:
//
//	fork, err := memo.Fork()
//	if err != nil {
//	    return err
//	}
//	if trySubgraph(fork) {
//	    memo.Adopt(fork) // commit
//	} // else: drop fork, memo is unchanged
//
// # Pool and hot reload
//
// Pool keeps cleared tables between independent passes. HotConfig watches a
// configuration file through Argus and reconfigures a Pool when it changes.
//
// # Errors
//
// The only runtime failure is MEMOTAB_ALLOCATION_FAILED, reported when a slot
// array request exceeds Config.MaxCapacity or the runtime refuses it.
// Use IsAllocationFailure, GetErrorCode and GetErrorContext to inspect errors.
// A process-level out-of-memory condition is fatal in Go and cannot be
// reported.
//
// # Concurrency
//
// Tables and Memos are single-goroutine structures with no internal locking.
// Use one per traversal, or serialize access externally. Pool and HotConfig
// are safe for concurrent use.
//
// # Observability
//
// Config.Logger receives growth, shrink and allocation-failure events.
// Config.MetricsCollector receives Get/Set latencies, grow and clear events;
// the github.com/agilira/memotab/otel module implements it with
// OpenTelemetry.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package memotab
