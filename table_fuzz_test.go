// table_fuzz_test.go: fuzz testing for the identity memo table
//
// The table is checked against a map oracle: every operation sequence must
// leave both in agreement and keep the structural invariants.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"encoding/binary"
	"testing"
)

// FuzzTableAgainstMap interprets the input as a stream of 5-byte operations:
// one opcode byte followed by a 32-bit key seed.
func FuzzTableAgainstMap(f *testing.F) {
	f.Add([]byte{0, 1, 0, 0, 0, 0, 2, 0, 0, 0, 1, 1, 0, 0, 0})
	f.Add([]byte{0, 0, 0, 16, 0, 0, 0, 0, 32, 0, 0, 0, 0, 48, 0, 2, 0, 0, 0, 0})
	f.Add([]byte{0, 255, 255, 255, 255, 3, 0, 0, 0, 0, 1, 255, 255, 255, 255})

	f.Fuzz(func(t *testing.T, ops []byte) {
		tb := mustNew(t, Config{MaxCapacity: 1 << 12})
		oracle := map[Identity]int64{}
		var counter int64

		for len(ops) >= 5 {
			op := ops[0] % 4
			seed := binary.LittleEndian.Uint32(ops[1:5])
			ops = ops[5:]

			// Shift into the high bits now and then to stress perturbation
			key := Identity(uintptr(seed)<<3 | 8)
			if seed&1 == 1 {
				key = Identity(uintptr(seed)<<16 | 8)
			}

			switch op {
			case 0: // set
				counter++
				err := tb.Set(key, counter)
				if err != nil {
					if !IsAllocationFailure(err) {
						t.Fatalf("unexpected error: %v", err)
					}
					continue
				}
				oracle[key] = counter
			case 1: // get
				got, found := tb.Get(key)
				want, ok := oracle[key]
				if found != ok || got != want {
					t.Fatalf("Get(%s) = %d,%v; oracle %d,%v", key, got, found, want, ok)
				}
			case 2: // clear
				if err := tb.Clear(); err != nil {
					t.Fatalf("Clear failed: %v", err)
				}
				oracle = map[Identity]int64{}
			case 3: // copy and continue on the copy
				cp, err := tb.Copy()
				if err != nil {
					t.Fatalf("Copy failed: %v", err)
				}
				tb = cp
			}

			if tb.Size() != len(oracle) {
				t.Fatalf("Size() = %d, oracle has %d", tb.Size(), len(oracle))
			}
		}

		checkInvariants(t, tb)
		for k, v := range oracle {
			if got, found := tb.Get(k); !found || got != v {
				t.Fatalf("final Get(%s) = %d,%v; want %d", k, got, found, v)
			}
		}
	})
}
