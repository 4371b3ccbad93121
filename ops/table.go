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

// Package ops holds the operator table and every operator handler
// family: arithmetic, bitwise, comparison, structural, byte-string,
// hashing, BLS12-381, secp256k1/secp256r1, and coinid (spec.md §4.3
// through §4.6). The table is built once at process start over a
// fixed opcode range, parameterized by the caller's immutable run-time
// Flags rather than a chain-config fork block.
package ops

import (
	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/params"
)

// Execute runs one operator's handler over its already-evaluated
// argument handles, returning the cost delta to charge beyond the
// operator's BaseCost (already charged by the caller) and the result
// node.
type Execute func(a *arena.Arena, args []arena.Handle, flags params.Flags) (costDelta uint64, result arena.Handle, err error)

// Operation is one slot of the operator table.
type Operation struct {
	Name     string
	BaseCost uint64
	// Requires, if non-zero, is the flag bit that must be set for this
	// opcode to be callable at all (e.g. ENABLE_BLS_OPS). Zero means
	// the operator is always available.
	Requires params.Flags
	Run      Execute
}

var table = map[params.Opcode]*Operation{}

func register(op params.Opcode, o *Operation) {
	table[op] = o
}

// Lookup resolves opByte to its Operation under the given flags. An
// opcode at or past the soft-fork window (params.SoftforkWindowStart)
// that has no table entry, or is gated behind a flag the caller didn't
// set, is "unknown": without STRICT, Lookup reports that via a nil op
// and unknownInWindow=true so the evaluator can apply spec.md §4.7's
// nil-at-fixed-cost behavior; with STRICT it fails ReservedOperator. An
// opcode below the window with no table entry, or gated behind a flag
// the caller didn't set, is always a hard InvalidOperator error.
func Lookup(opByte byte, flags params.Flags) (op *Operation, unknownInWindow bool, err error) {
	opcode := params.Opcode(opByte)
	entry, ok := table[opcode]
	if !ok {
		if opcode >= params.SoftforkWindowStart {
			if flags.Has(params.STRICT) {
				return nil, false, clvmerrors.New(clvmerrors.ReservedOperator, "reserved opcode 0x%02x", opByte)
			}
			return nil, true, nil
		}
		return nil, false, clvmerrors.New(clvmerrors.InvalidOperator, "unknown opcode 0x%02x", opByte)
	}
	if entry.Requires != 0 && !flags.Has(entry.Requires) {
		if opcode >= params.SoftforkWindowStart {
			if flags.Has(params.STRICT) {
				return nil, false, clvmerrors.New(clvmerrors.ReservedOperator, "opcode 0x%02x (%s) not enabled by flags", opByte, entry.Name)
			}
			return nil, true, nil
		}
		return nil, false, clvmerrors.New(clvmerrors.InvalidOperator, "opcode 0x%02x (%s) not enabled by flags", opByte, entry.Name)
	}
	return entry, false, nil
}

// argAtom extracts the atom bytes of args[i], failing ArgType if it is
// a pair. op is used only to label the error.
func argAtom(a *arena.Arena, args []arena.Handle, i int, op string) ([]byte, error) {
	if a.IsPair(args[i]) {
		return nil, clvmerrors.NewArgType(op, "atom").WithNode(args[i])
	}
	return a.Atom(args[i]), nil
}

func requireArgc(op string, args []arena.Handle, want int) error {
	if len(args) != want {
		return clvmerrors.New(clvmerrors.ArgType, "%s: exactly %d argument(s) required, got %d", op, want, len(args))
	}
	return nil
}

func requireArgcRange(op string, args []arena.Handle, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return clvmerrors.New(clvmerrors.ArgType, "%s: between %d and %d argument(s) required, got %d", op, min, max, len(args))
	}
	return nil
}

func totalArgBytes(a *arena.Arena, args []arena.Handle) int {
	n := 0
	for _, h := range args {
		if a.IsAtom(h) {
			n += len(a.Atom(h))
		}
	}
	return n
}
