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

package eval

import (
	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/ops"
	"github.com/chia-network/clvm-go/params"
)

// doSoftfork implements the soft-fork trampoline, spec.md §4.8. It is
// special-cased directly in eval rather than routed through ops.Table
// because, unlike every other operator, it must construct and drive a
// nested Evaluator — a capability only this package has.
func (ev *Evaluator) doSoftfork(args []arena.Handle) error {
	if err := ev.charge(costs.SoftforkBaseCost); err != nil {
		return err
	}
	sf, err := ops.DecodeSoftforkArgs(ev.arena, args)
	if err != nil {
		return err
	}
	if !params.Recognized(sf.ExtensionID) {
		if ev.flags.Has(params.ENABLE_SOFTFORK_EXTENSIONS) {
			// Unrecognized but tolerated: pay the declared cost and
			// report a no-op, spec.md §4.8.
			if err := ev.charge(sf.DeclaredCost); err != nil {
				return err
			}
			return ev.pushValue(arena.NilHandle())
		}
		return clvmerrors.New(clvmerrors.UnknownSoftforkExtension, "softfork: unrecognized extension id %d", sf.ExtensionID)
	}

	inner := New(ev.arena, sf.DeclaredCost, ev.flags)
	if _, err := inner.Run(sf.Program, sf.Env); err != nil {
		return clvmerrors.Wrap(err)
	}
	if inner.Cost() != sf.DeclaredCost {
		return clvmerrors.New(clvmerrors.SoftforkCostMismatch, "softfork: declared cost %d, actual cost %d", sf.DeclaredCost, inner.Cost())
	}
	if err := ev.charge(sf.DeclaredCost); err != nil {
		return err
	}
	return ev.pushValue(arena.NilHandle())
}
