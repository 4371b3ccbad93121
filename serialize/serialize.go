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

// Package serialize implements the canonical binary tree codec,
// spec.md §3/§4.2. Every routine that would naturally recurse over
// the tree shape instead drives an explicit work stack, so a
// million-deep left spine cannot overflow the host stack (spec.md
// §9).
package serialize

import (
	"bytes"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/params"
)

// pendingPair tracks an in-progress Pair node while Parse walks the
// byte stream: the position where its 0xFF marker was read (so the
// eventual serialized-bytes cache can slice the whole subtree) and
// whether its first child has been completed yet.
type pendingPair struct {
	start     int
	first     arena.Handle
	haveFirst bool
}

// Parse decodes exactly one node from the front of data into a, and
// returns its handle plus the number of bytes consumed. It does not
// require data to be fully consumed; callers that need "no trailing
// bytes" call ParseExact.
func Parse(a *arena.Arena, data []byte) (arena.Handle, int, error) {
	pos := 0
	var stack []*pendingPair

	// attach folds a freshly completed node (atom or pair) into its
	// parent pending pair, cascading upward through any pair that
	// becomes complete as a result. It returns the final handle and
	// true once the whole stack unwinds (the top-level node is done).
	attach := func(v arena.Handle, endPos int) (arena.Handle, bool) {
		for {
			if len(stack) == 0 {
				return v, true
			}
			top := stack[len(stack)-1]
			if !top.haveFirst {
				top.first = v
				top.haveFirst = true
				return 0, false
			}
			stack = stack[:len(stack)-1]
			pair := a.NewPair(top.first, v)
			a.SetCachedSerialization(pair, data[top.start:endPos])
			v = pair
			// loop: this pair may itself complete its own parent.
		}
	}

	for {
		if pos >= len(data) {
			return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated input at offset %d", pos)
		}
		b := data[pos]
		if b == 0xFF {
			stack = append(stack, &pendingPair{start: pos})
			pos++
			continue
		}
		start := pos
		h, fresh, newPos, err := parseAtom(a, data, pos)
		if err != nil {
			return 0, 0, err
		}
		if fresh {
			a.SetCachedSerialization(h, data[start:newPos])
		}
		pos = newPos
		if result, done := attach(h, pos); done {
			return result, pos, nil
		}
	}
}

// ParseExact is Parse plus a Trailing check: the caller demands that
// data is consumed exactly, with no leftover bytes (spec.md §4.2).
func ParseExact(a *arena.Arena, data []byte) (arena.Handle, error) {
	h, consumed, err := Parse(a, data)
	if err != nil {
		return 0, err
	}
	if consumed != len(data) {
		return 0, clvmerrors.New(clvmerrors.Trailing, "%d trailing byte(s) after node", len(data)-consumed)
	}
	return h, nil
}

// decodeHeader reads one atom header starting at pos and returns the
// offset at which the atom's payload begins and the offset one past
// its end. It never allocates; Parse and SerializedLength both build
// on it.
func decodeHeader(data []byte, pos int) (payloadStart, end int, err error) {
	if pos >= len(data) {
		return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated input at offset %d", pos)
	}
	b0 := data[pos]
	switch {
	case b0 <= 0x7F:
		return pos, pos + 1, nil
	case b0 == 0x80:
		return pos + 1, pos + 1, nil
	case b0 <= 0xBF:
		size := int(b0 & 0x3F)
		return endFor(data, pos+1, size)
	case b0 <= 0xDF:
		if pos+2 > len(data) {
			return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated size prefix at offset %d", pos)
		}
		size := int(b0&0x1F)<<8 | int(data[pos+1])
		return endFor(data, pos+2, size)
	case b0 <= 0xEF:
		if pos+3 > len(data) {
			return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated size prefix at offset %d", pos)
		}
		size := int(b0&0x0F)<<16 | int(data[pos+1])<<8 | int(data[pos+2])
		return endFor(data, pos+3, size)
	case b0 <= 0xF7:
		if pos+4 > len(data) {
			return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated size prefix at offset %d", pos)
		}
		size := int(b0&0x07)<<24 | int(data[pos+1])<<16 | int(data[pos+2])<<8 | int(data[pos+3])
		return endFor(data, pos+4, size)
	case b0 <= 0xFB:
		if pos+5 > len(data) {
			return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated size prefix at offset %d", pos)
		}
		size := uint64(b0&0x03)<<32 | uint64(data[pos+1])<<24 | uint64(data[pos+2])<<16 |
			uint64(data[pos+3])<<8 | uint64(data[pos+4])
		if size >= params.MaxDeclaredAtomSize {
			return 0, 0, clvmerrors.New(clvmerrors.TooLarge, "declared atom size %d too large", size)
		}
		return endFor(data, pos+5, int(size))
	case b0 == 0xFF:
		// Callers dispatch pair markers before calling decodeHeader.
		return 0, 0, clvmerrors.New(clvmerrors.InternalError, "decodeHeader called on a pair marker")
	default: // 0xFC..0xFE: reserved six-byte-class prefixes, spec.md §3.
		return 0, 0, clvmerrors.New(clvmerrors.TooLarge, "six-byte size prefix rejected at offset %d", pos)
	}
}

func endFor(data []byte, payloadStart, size int) (int, int, error) {
	end := payloadStart + size
	if end > len(data) || end < payloadStart {
		return 0, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated atom payload at offset %d", payloadStart)
	}
	return payloadStart, end, nil
}

func parseAtom(a *arena.Arena, data []byte, pos int) (h arena.Handle, fresh bool, end int, err error) {
	payloadStart, end, err := decodeHeader(data, pos)
	if err != nil {
		return 0, false, 0, err
	}
	h, fresh = a.NewAtomFresh(data[payloadStart:end])
	return h, fresh, end, nil
}

// SerializedLength validates data and returns the number of bytes the
// single leading node occupies, without allocating a tree (spec.md
// §6). It walks the same grammar as Parse but tracks only a pending-
// node counter instead of building pair nodes.
func SerializedLength(data []byte) (int, error) {
	pos := 0
	need := 1
	for need > 0 {
		if pos >= len(data) {
			return 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated input at offset %d", pos)
		}
		if data[pos] == 0xFF {
			pos++
			need++ // one pending node (the pair) becomes two (first, rest)
			continue
		}
		_, end, err := decodeHeader(data, pos)
		if err != nil {
			return 0, err
		}
		pos = end
		need--
	}
	return pos, nil
}

// IndexEntry describes one node's byte range within a parsed buffer,
// spec.md §4.2's "indexed parse": for an Atom, Extra is the offset
// within [Start,End) at which the payload begins; for a Pair, Extra
// is the pre-order index of the right (rest) child — the left (first)
// child is always at index+1.
type IndexEntry struct {
	Start, End int
	Extra      int
	IsPair     bool
}

type indexFrame struct {
	entryIdx  int
	haveFirst bool
}

// IndexedParse walks data once, recording the pre-order byte range of
// every node without materializing an Arena tree. This lets a caller
// slice out any subtree's canonical bytes in O(end-start) later.
func IndexedParse(data []byte) ([]IndexEntry, int, error) {
	var entries []IndexEntry
	var stack []*indexFrame
	pos := 0

	attach := func(endPos int) bool {
		for {
			if len(stack) == 0 {
				return true
			}
			top := stack[len(stack)-1]
			if !top.haveFirst {
				top.haveFirst = true
				entries[top.entryIdx].Extra = len(entries)
				return false
			}
			stack = stack[:len(stack)-1]
			entries[top.entryIdx].End = endPos
		}
	}

	for {
		if pos >= len(data) {
			return nil, 0, clvmerrors.New(clvmerrors.BadEncoding, "truncated input at offset %d", pos)
		}
		if data[pos] == 0xFF {
			entryIdx := len(entries)
			entries = append(entries, IndexEntry{Start: pos, IsPair: true})
			pos++
			stack = append(stack, &indexFrame{entryIdx: entryIdx})
			continue
		}
		start := pos
		payloadStart, end, err := decodeHeader(data, pos)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, IndexEntry{Start: start, End: end, Extra: payloadStart - start})
		pos = end
		if done := attach(end); done {
			return entries, pos, nil
		}
	}
}

// Serialize produces the canonical byte encoding of h, honoring any
// per-node cached byte slice (arena.CachedSerialization) so subtrees
// that came from a prior Parse call are copied, not re-walked. It
// uses an explicit handle stack rather than recursion (spec.md §9).
func Serialize(a *arena.Arena, h arena.Handle) []byte {
	var buf bytes.Buffer
	stack := []arena.Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cached, ok := a.CachedSerialization(cur); ok {
			buf.Write(cached)
			continue
		}
		if a.IsAtom(cur) {
			writeAtom(&buf, a.Atom(cur))
			continue
		}
		first, rest := a.Pair(cur)
		buf.WriteByte(0xFF)
		stack = append(stack, rest, first)
	}
	return buf.Bytes()
}

func writeAtom(buf *bytes.Buffer, b []byte) {
	n := len(b)
	switch {
	case n == 0:
		buf.WriteByte(0x80)
	case n == 1 && b[0] <= 0x7F:
		buf.WriteByte(b[0])
	case n <= 0x3F:
		buf.WriteByte(0x80 | byte(n))
		buf.Write(b)
	case n <= 0x1FFF:
		buf.WriteByte(0xC0 | byte(n>>8))
		buf.WriteByte(byte(n))
		buf.Write(b)
	case n <= 0xFFFFF:
		buf.WriteByte(0xE0 | byte(n>>16))
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n))
		buf.Write(b)
	case n <= 0x7FFFFFF:
		buf.WriteByte(0xF0 | byte(n>>24))
		buf.WriteByte(byte(n >> 16))
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n))
		buf.Write(b)
	default:
		un := uint64(n)
		buf.WriteByte(0xF8 | byte(un>>32))
		buf.WriteByte(byte(un >> 24))
		buf.WriteByte(byte(un >> 16))
		buf.WriteByte(byte(un >> 8))
		buf.WriteByte(byte(un))
		buf.Write(b)
	}
}
