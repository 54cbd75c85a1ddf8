// identity.go: non-owning identity tokens used as table keys
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"strconv"
	"unsafe"
)

// Identity is an opaque token naming one live object by its address.
//
// An Identity is compared only bit-for-bit and never dereferenced. It does
// not keep the object alive: the caller must keep every memoized object
// reachable, and its address unreused, for as long as any table (or copy of
// one) holds its identity.
//
// The zero Identity is the empty-slot sentinel and is never a valid key.
type Identity uintptr

// Of returns the identity of the object p points to.
// Of(nil) returns the zero Identity.
//
// Distinct zero-size objects may share an address in Go, so they are not
// distinguishable by identity. Objects that live on a goroutine stack move
// when the stack grows; memoize only objects the caller has heap-allocated
// or otherwise made escape, as every node of a shared object graph is.
func Of[T any](p *T) Identity {
	return Identity(uintptr(unsafe.Pointer(p))) // #nosec G103 - address is only compared, never dereferenced
}

// OfPointer returns the identity behind an untyped pointer.
// OfPointer(nil) returns the zero Identity.
func OfPointer(p unsafe.Pointer) Identity {
	return Identity(uintptr(p)) // #nosec G103 - address is only compared, never dereferenced
}

// IsZero reports whether id is the sentinel.
func (id Identity) IsZero() bool {
	return id == 0
}

// String formats the identity as a hex address.
func (id Identity) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

// hash reduces an identity to its probe hash. Heap addresses are at least
// 8-byte aligned, so the low three bits are dropped.
func (id Identity) hash() uintptr {
	return uintptr(id) >> 3
}
