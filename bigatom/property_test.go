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

package bigatom

import (
	"math/big"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyRoundTrip exercises spec.md §8's minimal-encoding
// invariant at volume: for any minimal-encoded integer i,
// ToInt(FromInt(i)) == i, and FromInt(ToInt(b)) == b when b is
// already minimal.
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bits := rapid.IntRange(1, 512).Draw(rt, "bits")
		n := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		n.Sub(n, big.NewInt(1))
		offset := rapid.Int64Range(-1<<20, 1<<20).Draw(rt, "offset")
		n.Add(n, big.NewInt(offset))
		if rapid.Bool().Draw(rt, "negative") {
			n.Neg(n)
		}

		b := FromInt(n)
		if !IsMinimal(b) {
			rt.Fatalf("FromInt(%s) = %x is not minimal", n, b)
		}
		got := ToInt(b)
		if got.Cmp(n) != 0 {
			rt.Fatalf("ToInt(FromInt(%s)) = %s, want %s", n, got, n)
		}

		// Normalize is idempotent on already-minimal encodings.
		if norm := Normalize(b); string(norm) != string(b) {
			rt.Fatalf("Normalize(%x) = %x, want fixed point", b, norm)
		}
	})
}
