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
	"bytes"
	"math/big"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/params"
)

func init() {
	register(params.OpConcat, &Operation{Name: "concat", BaseCost: costs.ConcatBaseCost, Run: opConcat})
	register(params.OpSubstr, &Operation{Name: "substr", BaseCost: costs.SubstrCost, Run: opSubstr})
	register(params.OpStrlen, &Operation{Name: "strlen", BaseCost: costs.StrlenBaseCost, Run: opStrlen})
	register(params.OpGtByte, &Operation{Name: ">s", BaseCost: costs.GrsBaseCost, Run: opGtByte})
}

func opConcat(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	var buf bytes.Buffer
	for i := range args {
		b, err := argAtom(a, args, i, "concat")
		if err != nil {
			return 0, 0, err
		}
		buf.Write(b)
	}
	delta := uint64(len(args))*costs.ConcatCostPerArg + uint64(buf.Len())*costs.ConcatCostPerByte
	return delta, a.NewAtom(buf.Bytes()), nil
}

// opSubstr implements (atom, start, end?); end defaults to len(atom),
// spec.md §4.5. Indices outside [0, len(atom)] or start > end fail
// InvalidSubstr.
func opSubstr(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgcRange("substr", args, 2, 3); err != nil {
		return 0, 0, err
	}
	b, err := argAtom(a, args, 0, "substr")
	if err != nil {
		return 0, 0, err
	}
	startB, err := argAtom(a, args, 1, "substr")
	if err != nil {
		return 0, 0, err
	}
	startInt := bigatom.ToInt(startB)
	if !startInt.IsInt64() {
		return 0, 0, clvmerrors.New(clvmerrors.InvalidSubstr, "substr: start index out of range")
	}
	start := startInt.Int64()
	end := int64(len(b))
	if len(args) == 3 {
		endB, err := argAtom(a, args, 2, "substr")
		if err != nil {
			return 0, 0, err
		}
		endInt := bigatom.ToInt(endB)
		if !endInt.IsInt64() {
			return 0, 0, clvmerrors.New(clvmerrors.InvalidSubstr, "substr: end index out of range")
		}
		end = endInt.Int64()
	}
	if start < 0 || end > int64(len(b)) || start > end {
		return 0, 0, clvmerrors.New(clvmerrors.InvalidSubstr, "substr: [%d,%d) out of range for %d-byte atom", start, end, len(b))
	}
	return 0, a.NewAtom(b[start:end]), nil
}

func opStrlen(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("strlen", args, 1); err != nil {
		return 0, 0, err
	}
	b, err := argAtom(a, args, 0, "strlen")
	if err != nil {
		return 0, 0, err
	}
	delta := uint64(len(b)) * costs.StrlenCostPerByte
	return delta, a.NewAtom(bigatom.FromInt(big.NewInt(int64(len(b))))), nil
}

func opGtByte(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc(">s", args, 2); err != nil {
		return 0, 0, err
	}
	left, err := argAtom(a, args, 0, ">s")
	if err != nil {
		return 0, 0, err
	}
	right, err := argAtom(a, args, 1, ">s")
	if err != nil {
		return 0, 0, err
	}
	delta := uint64(len(left)+len(right)) * costs.GrsCostPerByte
	if bytes.Compare(left, right) > 0 {
		return delta, a.NewAtom([]byte{1}), nil
	}
	return delta, arena.NilHandle(), nil
}
