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
	register(params.OpAdd, &Operation{Name: "+", BaseCost: costs.ArithBaseCost, Run: arithFold(func(acc, x *big.Int) { acc.Add(acc, x) })})
	register(params.OpSub, &Operation{Name: "-", BaseCost: costs.ArithBaseCost, Run: arithSub})
	register(params.OpMul, &Operation{Name: "*", BaseCost: costs.MulBaseCost, Run: arithMul})
	register(params.OpDiv, &Operation{Name: "div", BaseCost: costs.DivBaseCost, Run: arithDiv})
	register(params.OpDivmod, &Operation{Name: "divmod", BaseCost: costs.DivModBaseCost, Run: arithDivmod})
	register(params.OpMod, &Operation{Name: "mod", BaseCost: costs.ModBaseCost, Run: arithMod})
	register(params.OpModPow, &Operation{Name: "modpow", BaseCost: costs.ModPowBaseCost, Run: arithModPow})
	register(params.OpAsh, &Operation{Name: "ash", BaseCost: costs.AshiftBaseCost, Run: arithAsh})
	register(params.OpLsh, &Operation{Name: "lsh", BaseCost: costs.LshiftBaseCost, Run: arithLsh})
	register(params.OpGt, &Operation{Name: ">", BaseCost: costs.GrBaseCost, Run: arithGt})
	register(params.OpEq, &Operation{Name: "=", BaseCost: costs.EqBaseCost, Run: arithEq})
}

func atomInts(a *arena.Arena, args []arena.Handle, op string, flags params.Flags) ([]*big.Int, int, error) {
	out := make([]*big.Int, len(args))
	totalBytes := 0
	for i := range args {
		b, err := argAtom(a, args, i, op)
		if err != nil {
			return nil, 0, err
		}
		if flags.Has(params.ENFORCE_MINIMAL_ENCODING) && !bigatom.IsMinimal(b) {
			return nil, 0, clvmerrors.New(clvmerrors.ArgType, "%s: argument %d is not a minimally encoded integer", op, i)
		}
		out[i] = bigatom.ToInt(b)
		totalBytes += len(b)
	}
	return out, totalBytes, nil
}

// arithFold builds a variadic left-to-right fold (e.g. +) starting from
// identity zero.
func arithFold(combine func(acc, x *big.Int)) Execute {
	return func(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
		ints, totalBytes, err := atomInts(a, args, "+", flags)
		if err != nil {
			return 0, 0, err
		}
		acc := new(big.Int)
		for _, n := range ints {
			combine(acc, n)
		}
		delta := uint64(len(args))*costs.ArithCostPerArg + uint64(totalBytes)*costs.ArithCostPerByte
		return delta, a.NewAtom(bigatom.FromInt(acc)), nil
	}
}

func arithSub(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	ints, totalBytes, err := atomInts(a, args, "-", flags)
	if err != nil {
		return 0, 0, err
	}
	acc := new(big.Int)
	for i, n := range ints {
		switch {
		case i == 0 && len(ints) == 1:
			acc.Neg(n)
		case i == 0:
			acc.Set(n)
		default:
			acc.Sub(acc, n)
		}
	}
	// A single argument negates it; with more than one, the first term
	// seeds the accumulator rather than subtracting from zero, so that
	// (- 5) == -5 but (- 5 2) == 3, not -3.
	delta := uint64(len(args))*costs.ArithCostPerArg + uint64(totalBytes)*costs.ArithCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(acc)), nil
}

func arithMul(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	ints, _, err := atomInts(a, args, "*", flags)
	if err != nil {
		return 0, 0, err
	}
	acc := big.NewInt(1)
	var delta uint64
	prevBytes := 0
	for i, n := range ints {
		if i == 0 {
			acc.Set(n)
			prevBytes = len(bigatom.FromInt(n))
			continue
		}
		curBytes := len(bigatom.FromInt(n))
		acc.Mul(acc, n)
		// Cost model charges per multiply op plus a term quadratic in
		// the operand byte lengths (spec.md §4.3: "*" has no fixed
		// per-byte-of-input cost like + and -, since schoolbook
		// multiplication is superlinear).
		delta += costs.MulCostPerOp + uint64(prevBytes)*uint64(curBytes)*costs.MulLinearCostPerByte/costs.MulSquareCostPerByteDivider
		prevBytes = len(bigatom.FromInt(acc))
	}
	return delta, a.NewAtom(bigatom.FromInt(acc)), nil
}

// divModEuclidean computes (q, r) such that num = q*denom + r with q
// rounded toward negative infinity and r having the same sign as denom
// (never negative when denom is positive). math/big's DivMod is
// Euclidean (r always non-negative), so for a negative denom with a
// non-zero remainder the result is shifted by one step — DESIGN.md
// open-question (a).
func divModEuclidean(num, denom *big.Int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	q.DivMod(num, denom, r)
	if denom.Sign() < 0 && r.Sign() != 0 {
		q.Sub(q, big.NewInt(1))
		r.Add(r, denom)
	}
	return q, r
}

func arithDivmod(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("divmod", args, 2); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, "divmod", flags)
	if err != nil {
		return 0, 0, err
	}
	if ints[1].Sign() == 0 {
		return 0, 0, clvmerrors.New(clvmerrors.DivByZero, "divmod: division by zero")
	}
	q, r := divModEuclidean(ints[0], ints[1])
	delta := uint64(totalBytes) * costs.DivModCostPerByte
	result := a.NewPair(a.NewAtom(bigatom.FromInt(q)), a.NewPair(a.NewAtom(bigatom.FromInt(r)), arena.NilHandle()))
	return delta, result, nil
}

func arithDiv(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("div", args, 2); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, "div", flags)
	if err != nil {
		return 0, 0, err
	}
	if ints[1].Sign() == 0 {
		return 0, 0, clvmerrors.New(clvmerrors.DivByZero, "div: division by zero")
	}
	q, _ := divModEuclidean(ints[0], ints[1])
	delta := uint64(totalBytes) * costs.DivCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(q)), nil
}

func arithMod(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("mod", args, 2); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, "mod", flags)
	if err != nil {
		return 0, 0, err
	}
	if ints[1].Sign() == 0 {
		return 0, 0, clvmerrors.New(clvmerrors.ModByZero, "mod: division by zero")
	}
	_, r := divModEuclidean(ints[0], ints[1])
	delta := uint64(totalBytes) * costs.ModCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(r)), nil
}

func arithModPow(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("modpow", args, 3); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, "modpow", flags)
	if err != nil {
		return 0, 0, err
	}
	base, exp, mod := ints[0], ints[1], ints[2]
	if exp.Sign() < 0 {
		return 0, 0, clvmerrors.New(clvmerrors.NegativeExponent, "modpow: negative exponent")
	}
	if mod.Sign() == 0 {
		return 0, 0, clvmerrors.New(clvmerrors.ModByZero, "modpow: modulus is zero")
	}
	result := new(big.Int).Exp(base, exp, new(big.Int).Abs(mod))
	if mod.Sign() < 0 && result.Sign() != 0 {
		result.Sub(result, new(big.Int).Abs(mod))
	}
	delta := uint64(totalBytes) * costs.ModPowCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(result)), nil
}

func arithAsh(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("ash", args, 2); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, "ash", flags)
	if err != nil {
		return 0, 0, err
	}
	if !ints[1].IsInt64() {
		return 0, 0, clvmerrors.New(clvmerrors.ShiftTooLarge, "ash: shift count out of range")
	}
	shift := ints[1].Int64()
	if shift > params.MaxShiftMagnitude || shift < -params.MaxShiftMagnitude {
		return 0, 0, clvmerrors.New(clvmerrors.ShiftTooLarge, "ash: |shift| > %d", params.MaxShiftMagnitude)
	}
	result := new(big.Int).Set(ints[0])
	if shift >= 0 {
		result.Lsh(result, uint(shift))
	} else {
		result.Rsh(result, uint(-shift)) // big.Int.Rsh on a signed value is arithmetic (floor) shift.
	}
	delta := uint64(totalBytes) * costs.AshiftCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(result)), nil
}

func arithLsh(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("lsh", args, 2); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, "lsh", flags)
	if err != nil {
		return 0, 0, err
	}
	if !ints[1].IsInt64() {
		return 0, 0, clvmerrors.New(clvmerrors.ShiftTooLarge, "lsh: shift count out of range")
	}
	shift := ints[1].Int64()
	if shift > params.MaxShiftMagnitude || shift < -params.MaxShiftMagnitude {
		return 0, 0, clvmerrors.New(clvmerrors.ShiftTooLarge, "lsh: |shift| > %d", params.MaxShiftMagnitude)
	}
	// lsh shifts the magnitude (absolute value) of the input and then
	// restores its sign, spec.md §4.3, so (lsh -1 3) is -8 and a right
	// shift of a negative value truncates toward zero.
	mag := new(big.Int).Set(ints[0])
	neg := mag.Sign() < 0
	if neg {
		mag.Neg(mag)
	}
	if shift >= 0 {
		mag.Lsh(mag, uint(shift))
	} else {
		mag.Rsh(mag, uint(-shift))
	}
	if neg {
		mag.Neg(mag)
	}
	delta := uint64(totalBytes) * costs.LshiftCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(mag)), nil
}

func arithGt(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc(">", args, 2); err != nil {
		return 0, 0, err
	}
	ints, totalBytes, err := atomInts(a, args, ">", flags)
	if err != nil {
		return 0, 0, err
	}
	delta := uint64(totalBytes) * costs.GrCostPerByte
	if ints[0].Cmp(ints[1]) > 0 {
		return delta, a.NewAtom([]byte{1}), nil
	}
	return delta, arena.NilHandle(), nil
}

func arithEq(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("=", args, 2); err != nil {
		return 0, 0, err
	}
	left, err := argAtom(a, args, 0, "=")
	if err != nil {
		return 0, 0, err
	}
	right, err := argAtom(a, args, 1, "=")
	if err != nil {
		return 0, 0, err
	}
	delta := uint64(len(left)+len(right)) * costs.EqCostPerByte
	if string(left) == string(right) {
		return delta, a.NewAtom([]byte{1}), nil
	}
	return delta, arena.NilHandle(), nil
}
