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

package costs

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/chia-network/clvm-go/clvmerrors"
)

// TestPropertyChargeNeverExceedsMaxUndetected exercises spec.md §8's
// "cost determinism under failure" property at volume: whatever
// sequence of Charge calls is made, the meter either accepts every
// charge and ends with Cost() <= Max(), or it fails on some call and
// reports a clamped cost of exactly Max()+1 from then on.
func TestPropertyChargeNeverExceedsMaxUndetected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		max := rapid.Uint64Range(0, 1<<40).Draw(rt, "max")
		deltas := rapid.SliceOfN(rapid.Uint64Range(0, 1<<20), 0, 20).Draw(rt, "deltas")

		m := New(max)
		failed := false
		for _, d := range deltas {
			err := m.Charge(d)
			if err != nil {
				failed = true
				var ce *clvmerrors.Error
				if !errors.As(err, &ce) || !ce.HasCost {
					rt.Fatalf("CostExceeded error missing clamped cost: %v", err)
				}
				if ce.Cost != max+1 {
					rt.Fatalf("clamped cost = %d, want %d", ce.Cost, max+1)
				}
				continue
			}
			if failed {
				rt.Fatalf("Charge succeeded after a prior Charge had already failed")
			}
		}
		if !failed && m.Cost() > max {
			rt.Fatalf("meter accepted charges totalling %d, exceeding max %d, without error", m.Cost(), max)
		}
	})
}
