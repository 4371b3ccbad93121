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

// Package treehash computes the non-recursive SHA-256 "shatree" over
// a clvm-go node graph, spec.md §3: H(atom a) = sha256(0x01||a),
// H(pair(l,r)) = sha256(0x02||H(l)||H(r)).
package treehash

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/serialize"
)

const (
	atomPrefix byte = 0x01
	pairPrefix byte = 0x02
)

// Hash computes the tree hash of h, walking the graph with an
// explicit stack (spec.md §9) and consulting/populating the per-node
// memo on a so repeated hashing of shared subtrees is O(1) after the
// first visit (spec.md §4.4, I4).
func Hash(a *arena.Arena, root arena.Handle) [32]byte {
	type frame struct {
		handle    arena.Handle
		haveFirst bool
		first     [32]byte
	}
	var stack []*frame
	cur := root

	for {
		// Descend through pairs along the leftmost spine until cur
		// resolves to a completed hash value.
		var value [32]byte
		for {
			if cached, ok := a.CachedHash(cur); ok {
				value = cached
				break
			}
			if a.IsAtom(cur) {
				sum := sha256.Sum256(append([]byte{atomPrefix}, a.Atom(cur)...))
				a.SetCachedHash(cur, sum)
				value = sum
				break
			}
			first, _ := a.Pair(cur)
			stack = append(stack, &frame{handle: cur})
			cur = first
		}

		// Cascade value upward through every frame it completes.
		for {
			if len(stack) == 0 {
				return value
			}
			top := stack[len(stack)-1]
			if !top.haveFirst {
				top.haveFirst = true
				top.first = value
				_, rest := a.Pair(top.handle)
				cur = rest
				break
			}
			stack = stack[:len(stack)-1]
			buf := make([]byte, 0, 1+32+32)
			buf = append(buf, pairPrefix)
			buf = append(buf, top.first[:]...)
			buf = append(buf, value[:]...)
			value = sha256.Sum256(buf)
			a.SetCachedHash(top.handle, value)
		}
	}
}

// bytesCache memoizes HashBytes results: unlike Hash, HashBytes has no
// Arena node to attach a per-node memo field to, so a bounded LRU
// keyed by the input bytes backs repeated hashing of the same
// standalone buffer (e.g. a CLI invoked repeatedly on the same fixed
// puzzle reveal).
var bytesCache = mustCache(1024)

func mustCache(size int) *lru.Cache[string, [32]byte] {
	c, err := lru.New[string, [32]byte](size)
	if err != nil {
		panic(err)
	}
	return c
}

// HashBytes parses data as a single canonical tree and returns its
// tree hash, without requiring the caller to own an Arena.
func HashBytes(data []byte) ([32]byte, error) {
	if sum, ok := bytesCache.Get(string(data)); ok {
		return sum, nil
	}
	a := arena.New()
	h, _, err := serialize.Parse(a, data)
	if err != nil {
		return [32]byte{}, err
	}
	sum := Hash(a, h)
	bytesCache.Add(string(data), sum)
	return sum, nil
}
