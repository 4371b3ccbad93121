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
	"math/big"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/params"
)

func init() {
	register(params.OpLogAnd, &Operation{Name: "logand", BaseCost: costs.LogBaseCost, Run: logFold((*big.Int).And)})
	register(params.OpLogIor, &Operation{Name: "logior", BaseCost: costs.LogBaseCost, Run: logFold((*big.Int).Or)})
	register(params.OpLogXor, &Operation{Name: "logxor", BaseCost: costs.LogBaseCost, Run: logFold((*big.Int).Xor)})
	register(params.OpLogNot, &Operation{Name: "lognot", BaseCost: costs.LogNotBaseCost, Run: opLognot})
	register(params.OpNot, &Operation{Name: "not", BaseCost: costs.NotBaseCost, Run: opNot})
	register(params.OpAny, &Operation{Name: "any", BaseCost: costs.BoolBaseCost, Run: boolFold(false)})
	register(params.OpAll, &Operation{Name: "all", BaseCost: costs.BoolBaseCost, Run: boolFold(true)})
}

// logFold builds a bitwise fold over two's-complement big.Int values
// (logand/logior/logxor), all of which operate byte-for-byte on the
// atoms' two's-complement representation, not on the mathematical
// integers in isolation — math/big's bitwise ops already implement
// infinite two's-complement semantics for negative operands, matching
// spec.md §4.3's bitwise operators directly.
func logFold(op func(z, x, y *big.Int) *big.Int) Execute {
	return func(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
		ints, totalBytes, err := atomInts(a, args, "logand/logior/logxor", flags)
		if err != nil {
			return 0, 0, err
		}
		acc := new(big.Int)
		if len(ints) > 0 {
			acc.Set(ints[0])
			for _, n := range ints[1:] {
				op(acc, acc, n)
			}
		}
		delta := uint64(len(args))*costs.LogCostPerArg + uint64(totalBytes)*costs.LogCostPerByte
		return delta, a.NewAtom(bigatom.FromInt(acc)), nil
	}
}

func opLognot(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("lognot", args, 1); err != nil {
		return 0, 0, err
	}
	b, err := argAtom(a, args, 0, "lognot")
	if err != nil {
		return 0, 0, err
	}
	if flags.Has(params.ENFORCE_MINIMAL_ENCODING) && !bigatom.IsMinimal(b) {
		return 0, 0, clvmerrors.New(clvmerrors.ArgType, "lognot: argument 0 is not a minimally encoded integer")
	}
	n := bigatom.ToInt(b)
	result := new(big.Int).Not(n)
	delta := uint64(len(b)) * costs.LogNotCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(result)), nil
}

func opNot(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("not", args, 1); err != nil {
		return 0, 0, err
	}
	if a.IsNil(args[0]) {
		return costs.NotCostPerBit, a.NewAtom([]byte{1}), nil
	}
	return costs.NotCostPerBit, arena.NilHandle(), nil
}

// boolFold builds "any" (true if at least one argument is non-nil) and
// "all" (true only if every argument is non-nil) as a single
// short-circuit-free scan over the already-evaluated argument values —
// there is no control-flow short circuit here because every argument
// was already evaluated by the caller before this handler ever runs;
// "short-circuit" in spec.md §4.4 refers only to "i", not to the
// evaluation-order semantics "any"/"all" themselves.
func boolFold(wantAll bool) Execute {
	return func(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
		result := wantAll
		for _, h := range args {
			truthy := !a.IsNil(h)
			if wantAll {
				result = result && truthy
			} else {
				result = result || truthy
			}
		}
		delta := uint64(len(args)) * costs.BoolCostPerArg
		if result {
			return delta, a.NewAtom([]byte{1}), nil
		}
		return delta, arena.NilHandle(), nil
	}
}
