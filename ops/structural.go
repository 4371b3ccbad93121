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
	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/params"
)

// Note: "q" (quote) and "a" (apply) are not registered here — the
// evaluator special-cases both directly in Eval/Apply dispatch (spec.md
// §4.7), since quote needs to avoid evaluating its operand entirely and
// apply needs to splice a new environment into a pending evaluation.
// "i", "c", "f", "r", "l", and "x" are ordinary operators: spec.md §4.4
// is explicit that "i" does not short-circuit, so both of its non-
// selected branches are evaluated like any other operator's arguments
// before this handler ever runs (DESIGN.md open-question (b)).

func init() {
	register(params.OpIf, &Operation{Name: "i", BaseCost: costs.IfCost, Run: opIf})
	register(params.OpCons, &Operation{Name: "c", BaseCost: costs.ConsCost, Run: opCons})
	register(params.OpFirst, &Operation{Name: "f", BaseCost: costs.FirstCost, Run: opFirst})
	register(params.OpRest, &Operation{Name: "r", BaseCost: costs.RestCost, Run: opRest})
	register(params.OpListp, &Operation{Name: "l", BaseCost: costs.ListpCost, Run: opListp})
	register(params.OpRaise, &Operation{Name: "x", BaseCost: 0, Run: opRaise})
}

func opIf(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("i", args, 3); err != nil {
		return 0, 0, err
	}
	if !a.IsNil(args[0]) {
		return 0, args[1], nil
	}
	return 0, args[2], nil
}

func opCons(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("c", args, 2); err != nil {
		return 0, 0, err
	}
	return 0, a.NewPair(args[0], args[1]), nil
}

func opFirst(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("f", args, 1); err != nil {
		return 0, 0, err
	}
	if a.IsAtom(args[0]) {
		return 0, 0, clvmerrors.New(clvmerrors.FirstOfNonCons, "f: argument is not a cons").WithNode(args[0])
	}
	first, _ := a.Pair(args[0])
	return 0, first, nil
}

func opRest(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("r", args, 1); err != nil {
		return 0, 0, err
	}
	if a.IsAtom(args[0]) {
		return 0, 0, clvmerrors.New(clvmerrors.RestOfNonCons, "r: argument is not a cons").WithNode(args[0])
	}
	_, rest := a.Pair(args[0])
	return 0, rest, nil
}

func opListp(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("l", args, 1); err != nil {
		return 0, 0, err
	}
	if a.IsPair(args[0]) {
		return 0, a.NewAtom([]byte{1}), nil
	}
	return 0, arena.NilHandle(), nil
}

// opRaise implements "x": it always fails, carrying the full evaluated
// argument list as the error's payload node (spec.md §4.4, example 5 in
// spec.md §8: `(x (q . foo) (q . bar))` raises with payload `("foo"
// "bar")`, the cons-list of the evaluated arguments, not a bare atom).
func opRaise(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	payload := arena.NilHandle()
	for i := len(args) - 1; i >= 0; i-- {
		payload = a.NewPair(args[i], payload)
	}
	return 0, 0, clvmerrors.New(clvmerrors.ClvmRaise, "x: user raise").WithNode(payload)
}
