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

package ops

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/params"
)

// TestPropertyFirstRestInvertCons exercises spec.md §4.5's structural
// invariant at volume: for any two atoms built into a pair by "c",
// "f" recovers the first and "r" recovers the second, regardless of
// atom content.
func TestPropertyFirstRestInvertCons(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := arena.New()
		first := a.NewAtom(rapid.SliceOfN(rapid.Byte(), 0, 16).Draw(rt, "first"))
		rest := a.NewAtom(rapid.SliceOfN(rapid.Byte(), 0, 16).Draw(rt, "rest"))

		_, pair, err := runOp(t, params.OpCons, a, []arena.Handle{first, rest}, 0)
		if err != nil {
			rt.Fatalf("cons failed: %v", err)
		}
		_, gotFirst, err := runOp(t, params.OpFirst, a, []arena.Handle{pair}, 0)
		if err != nil {
			rt.Fatalf("first failed: %v", err)
		}
		_, gotRest, err := runOp(t, params.OpRest, a, []arena.Handle{pair}, 0)
		if err != nil {
			rt.Fatalf("rest failed: %v", err)
		}
		if gotFirst != first {
			rt.Fatalf("first(cons(a,b)) != a")
		}
		if gotRest != rest {
			rt.Fatalf("rest(cons(a,b)) != b")
		}
	})
}

// TestPropertyListpTrueOnlyForPairs checks "l" agrees with IsPair for
// any mix of freshly built atoms and pairs.
func TestPropertyListpTrueOnlyForPairs(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := arena.New()
		var h arena.Handle
		if rapid.Bool().Draw(rt, "isPair") {
			h = a.NewPair(a.NewAtom(nil), a.NewAtom(nil))
		} else {
			h = a.NewAtom(rapid.SliceOfN(rapid.Byte(), 0, 8).Draw(rt, "atom"))
		}

		_, result, err := runOp(t, params.OpListp, a, []arena.Handle{h}, 0)
		if err != nil {
			rt.Fatalf("listp failed: %v", err)
		}
		isTruthy := !a.IsNil(result)
		if isTruthy != a.IsPair(h) {
			rt.Fatalf("listp(%v) = %v, want %v", h, isTruthy, a.IsPair(h))
		}
	})
}
