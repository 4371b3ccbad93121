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
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
)

// SoftforkArgs is the decoded, validated argument tuple of a `softfork`
// call (spec.md §4.8): (declared_cost, extension_id, program, env). The
// actual nested sub-evaluation is performed by the eval package, which
// owns the evaluator and therefore must drive the trampoline itself —
// this package only validates and decodes the call's own arguments, the
// same boundary every other operator handler observes.
type SoftforkArgs struct {
	DeclaredCost uint64
	ExtensionID  int64
	Program      arena.Handle
	Env          arena.Handle
}

// DecodeSoftforkArgs validates the four arguments to `softfork` and
// extracts them into a SoftforkArgs. It does not run anything; eval.go
// calls this before constructing the nested evaluator.
func DecodeSoftforkArgs(a *arena.Arena, args []arena.Handle) (SoftforkArgs, error) {
	if len(args) != 4 {
		return SoftforkArgs{}, clvmerrors.New(clvmerrors.ArgType, "softfork: exactly 4 arguments required, got %d", len(args))
	}
	costB, err := argAtom(a, args, 0, "softfork")
	if err != nil {
		return SoftforkArgs{}, err
	}
	declared := bigatom.ToInt(costB)
	if declared.Sign() < 0 || !declared.IsUint64() {
		return SoftforkArgs{}, clvmerrors.New(clvmerrors.ArgType, "softfork: declared_cost out of range").WithNode(args[0])
	}
	extB, err := argAtom(a, args, 1, "softfork")
	if err != nil {
		return SoftforkArgs{}, err
	}
	ext := bigatom.ToInt(extB)
	if !ext.IsInt64() {
		return SoftforkArgs{}, clvmerrors.New(clvmerrors.ArgType, "softfork: extension_id out of range").WithNode(args[1])
	}
	return SoftforkArgs{
		DeclaredCost: declared.Uint64(),
		ExtensionID:  ext.Int64(),
		Program:      args[2],
		Env:          args[3],
	}, nil
}
