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

// Package arena implements the append-only node store every clvm-go
// run owns: a pool of Atoms and Pairs addressed by small integer
// Handles, spec.md §3/§4.1. Within one Arena, storage only grows; the
// whole Arena is released when a run completes unless a lazy result
// view keeps it alive.
package arena

import "fmt"

// Kind distinguishes the two node shapes a Handle can resolve to.
type Kind uint8

const (
	KindAtom Kind = iota
	KindPair
)

// Handle is an opaque reference into an Arena's node store. The zero
// Handle is never a valid node; handles are 1-based so the zero value
// can serve as a "no node" sentinel (e.g. Error.Node).
type Handle uint32

// IsZero reports whether h is the invalid sentinel handle, satisfying
// clvmerrors.NodeRef.
func (h Handle) IsZero() bool { return h == 0 }

type node struct {
	kind  Kind
	atom  []byte
	first Handle
	rest  Handle

	// memo caches, filled lazily by serialize/treehash packages via the
	// accessor methods below (spec.md §9: per-node memoization).
	hash      *[32]byte
	hashValid bool
	ser       []byte
	serValid  bool
}

// Arena is the append-only node store for a single run. It is not
// safe for concurrent use by multiple goroutines without external
// synchronization; each run_program call constructs its own Arena.
type Arena struct {
	nodes []node
	dedup *internCache
}

// New returns a fresh Arena pre-seeded with the process-wide interned
// atom table (the empty atom and all 256 single-byte atoms) at fixed
// handle numbers, so those handles are byte-for-byte identical in
// storage across every Arena without re-allocating their backing
// slices (spec.md §4.1, §5: "the interned small-atom table is
// immutable after process start").
func New() *Arena {
	a := &Arena{
		nodes: make([]node, 0, len(internedAtoms)+64),
		dedup: newInternCache(4096),
	}
	for _, b := range internedAtoms {
		a.nodes = append(a.nodes, node{kind: KindAtom, atom: b})
	}
	return a
}

// handleFor converts a 0-based node slice index to a 1-based Handle.
func handleFor(idx int) Handle { return Handle(idx + 1) }

func (a *Arena) index(h Handle) int {
	if h == 0 || int(h) > len(a.nodes) {
		panic(fmt.Sprintf("arena: invalid handle %d (len=%d)", h, len(a.nodes)))
	}
	return int(h) - 1
}

// NilHandle is the canonical handle for the empty atom (false/nil),
// always present at a fixed position in every Arena.
func NilHandle() Handle { return handleFor(0) }

// SmallInt returns the interned handle for the one-byte atom [b],
// valid for b in 0x00..0x7F used directly as a single-byte atom value.
// For b >= 0x80 this is still the interned single-byte atom, but note
// spec.md §3's one-byte-atom short form only applies to 0x00..0x7F;
// 0x80..0xFF single-byte atoms are still valid Handles here, just not
// reachable via the one-byte serialization form.
func SmallInt(b byte) Handle { return handleFor(1 + int(b)) }

// NewAtom interns bytes into the arena and returns its handle. Short
// atoms (length 0 or 1) resolve to the shared process-wide table
// without allocating; atoms of length 2..8 are deduplicated against a
// bounded per-arena cache (the "small-atom fast path" of spec.md
// §4.1); longer atoms always allocate a fresh node.
func (a *Arena) NewAtom(b []byte) Handle {
	h, _ := a.NewAtomFresh(b)
	return h
}

// NewAtomFresh is NewAtom plus a fresh flag: fresh is true only when b
// caused a brand-new node to be allocated, and false when the returned
// handle is shared with other occurrences of the same atom value (the
// interned 0/1-byte table or a small-atom dedup hit). Callers that
// attach per-handle metadata — serialize's per-node serialization
// cache, in particular — must not do so on a non-fresh handle, since
// that metadata would then apply to every occurrence sharing the
// handle, not just the one that produced it.
func (a *Arena) NewAtomFresh(b []byte) (h Handle, fresh bool) {
	switch len(b) {
	case 0:
		return NilHandle(), false
	case 1:
		return SmallInt(b[0]), false
	}
	if len(b) <= smallAtomMaxLen {
		if h, ok := a.dedup.get(b); ok {
			return h, false
		}
		h := a.appendAtom(b)
		a.dedup.put(b, h)
		return h, true
	}
	return a.appendAtom(b), true
}

func (a *Arena) appendAtom(b []byte) Handle {
	a.nodes = append(a.nodes, node{kind: KindAtom, atom: b})
	return handleFor(len(a.nodes) - 1)
}

// NewPair allocates a new pair node and returns its handle.
func (a *Arena) NewPair(first, rest Handle) Handle {
	a.nodes = append(a.nodes, node{kind: KindPair, first: first, rest: rest})
	return handleFor(len(a.nodes) - 1)
}

// Kind reports whether h resolves to an Atom or a Pair.
func (a *Arena) Kind(h Handle) Kind { return a.nodes[a.index(h)].kind }

// IsAtom reports whether h resolves to an Atom.
func (a *Arena) IsAtom(h Handle) bool { return a.Kind(h) == KindAtom }

// IsPair reports whether h resolves to a Pair.
func (a *Arena) IsPair(h Handle) bool { return a.Kind(h) == KindPair }

// IsNil reports whether h is the empty atom.
func (a *Arena) IsNil(h Handle) bool {
	return a.IsAtom(h) && len(a.Atom(h)) == 0
}

// Atom returns the byte payload of an atom node. Calling it on a pair
// node panics; callers must check Kind first (the evaluator always
// does, converting the mismatch into a typed clvmerrors.Error instead
// of letting the panic escape).
func (a *Arena) Atom(h Handle) []byte {
	n := &a.nodes[a.index(h)]
	if n.kind != KindAtom {
		panic("arena: Atom called on a pair node")
	}
	return n.atom
}

// Pair returns the two children of a pair node. Calling it on an atom
// node panics; see Atom's comment.
func (a *Arena) Pair(h Handle) (first, rest Handle) {
	n := &a.nodes[a.index(h)]
	if n.kind != KindPair {
		panic("arena: Pair called on an atom node")
	}
	return n.first, n.rest
}

// Len returns the number of nodes currently allocated (including the
// 257 interned entries every Arena starts with).
func (a *Arena) Len() int { return len(a.nodes) }

// cachedHash / setCachedHash / cachedSer / setCachedSer back the
// per-node memoization spec.md §9 describes for tree-hash and
// serialized byte slices.
func (a *Arena) cachedHash(h Handle) ([32]byte, bool) {
	n := &a.nodes[a.index(h)]
	if !n.hashValid {
		return [32]byte{}, false
	}
	return *n.hash, true
}

func (a *Arena) setCachedHash(h Handle, sum [32]byte) {
	n := &a.nodes[a.index(h)]
	n.hash = &sum
	n.hashValid = true
}

func (a *Arena) cachedSer(h Handle) ([]byte, bool) {
	n := &a.nodes[a.index(h)]
	if !n.serValid {
		return nil, false
	}
	return n.ser, true
}

func (a *Arena) setCachedSer(h Handle, b []byte) {
	n := &a.nodes[a.index(h)]
	n.ser = b
	n.serValid = true
}

// CachedHash exposes the per-node tree-hash memo to other packages
// (treehash) without exposing the node representation itself.
func (a *Arena) CachedHash(h Handle) ([32]byte, bool) { return a.cachedHash(h) }

// SetCachedHash lets treehash populate the per-node memo after
// computing a hash.
func (a *Arena) SetCachedHash(h Handle, sum [32]byte) { a.setCachedHash(h, sum) }

// CachedSerialization exposes the per-node serialized-bytes memo to
// the serialize package.
func (a *Arena) CachedSerialization(h Handle) ([]byte, bool) { return a.cachedSer(h) }

// SetCachedSerialization lets serialize populate the per-node memo
// after computing a node's canonical byte slice.
func (a *Arena) SetCachedSerialization(h Handle, b []byte) { a.setCachedSer(h, b) }
