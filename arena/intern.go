// Copyright 2026 The clvm-go Authors
// This file is part of clvm-go.
//
// clvm-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// clvm-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with clvm-go. If not, see <http://www.gnu.org/licenses/>.

package arena

import lru "github.com/hashicorp/golang-lru/v2"

// smallAtomMaxLen is the upper bound, in bytes, of the per-arena
// small-atom fast path (spec.md §4.1). Atoms at or below this length
// are deduplicated within one Arena via a bounded LRU cache rather
// than the process-wide interned table (which only covers length 0
// and 1, to keep the table's size fixed at process start).
const smallAtomMaxLen = 8

// internedAtoms is the process-wide, read-only table of the empty
// atom and every single-byte atom, built once at package init and
// never mutated afterward (spec.md §5: "the interned small-atom table
// is immutable after process start"). Every Arena seeds its node
// store from this same backing storage, so Handle values for these
// atoms are identical, and their []byte backing arrays are shared,
// across every Arena in the process.
var internedAtoms [257][]byte

func init() {
	internedAtoms[0] = nil // the empty atom
	for b := 0; b < 256; b++ {
		internedAtoms[b+1] = []byte{byte(b)}
	}
}

// internCache is a bounded, per-arena dedupe table for the small-atom
// fast path. It is backed by a fixed-capacity LRU rather than an
// unbounded map so a program that manufactures many distinct 2-8 byte
// atoms (e.g. via repeated concat/substr) cannot force unbounded
// cache growth; eviction merely falls back to allocating a fresh
// node, it never loses correctness.
type internCache struct {
	c *lru.Cache[string, Handle]
}

func newInternCache(capacity int) *internCache {
	c, err := lru.New[string, Handle](capacity)
	if err != nil {
		// Only returns an error for a non-positive capacity, which is a
		// programmer error, not a runtime condition.
		panic(err)
	}
	return &internCache{c: c}
}

func (ic *internCache) get(b []byte) (Handle, bool) {
	return ic.c.Get(string(b))
}

func (ic *internCache) put(b []byte, h Handle) {
	ic.c.Add(string(b), h)
}
