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
	"crypto/sha256"

	"golang.org/x/crypto/sha3"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/params"
)

func init() {
	register(params.OpSha256, &Operation{Name: "sha256", BaseCost: costs.Sha256BaseCost, Run: opSha256})
	register(params.OpKeccak256, &Operation{Name: "keccak256", BaseCost: costs.Keccak256BaseCost, Requires: params.ENABLE_KECCAK, Run: opKeccak256})
	register(params.OpCoinID, &Operation{Name: "coinid", BaseCost: costs.CoinIDCost, Run: opCoinID})
}

func opSha256(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	h := sha256.New()
	total := 0
	for i := range args {
		b, err := argAtom(a, args, i, "sha256")
		if err != nil {
			return 0, 0, err
		}
		h.Write(b)
		total += len(b)
	}
	sum := h.Sum(nil)
	delta := uint64(len(args))*costs.Sha256CostPerArg + uint64(total)*costs.Sha256CostPerByte
	return delta, a.NewAtom(sum), nil
}

func opKeccak256(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	h := sha3.NewLegacyKeccak256()
	total := 0
	for i := range args {
		b, err := argAtom(a, args, i, "keccak256")
		if err != nil {
			return 0, 0, err
		}
		h.Write(b)
		total += len(b)
	}
	sum := h.Sum(nil)
	delta := uint64(len(args))*costs.Keccak256CostPerArg + uint64(total)*costs.Keccak256CostPerByte
	return delta, a.NewAtom(sum), nil
}

// opCoinID computes sha256(parent || puzzle_hash || amount_minimal),
// spec.md §4.6: parent and puzzle_hash must be exactly 32 bytes, and
// amount must be a non-negative integer atom within
// params.MaxCoinAmount, strictly sized arguments rather than the
// accept-anything convention the arithmetic operators use.
func opCoinID(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("coinid", args, 3); err != nil {
		return 0, 0, err
	}
	parent, err := argAtom(a, args, 0, "coinid")
	if err != nil {
		return 0, 0, err
	}
	if len(parent) != params.CoinIDHashSize {
		return 0, 0, clvmerrors.New(clvmerrors.ArgSize, "coinid: parent atom is not %d bytes", params.CoinIDHashSize).WithNode(args[0])
	}
	puzzleHash, err := argAtom(a, args, 1, "coinid")
	if err != nil {
		return 0, 0, err
	}
	if len(puzzleHash) != params.CoinIDHashSize {
		return 0, 0, clvmerrors.New(clvmerrors.ArgSize, "coinid: puzzle_hash atom is not %d bytes", params.CoinIDHashSize).WithNode(args[1])
	}
	amountB, err := argAtom(a, args, 2, "coinid")
	if err != nil {
		return 0, 0, err
	}
	amount := bigatom.ToInt(amountB)
	if amount.Sign() < 0 {
		return 0, 0, clvmerrors.New(clvmerrors.ArgType, "coinid: amount must be non-negative").WithNode(args[2])
	}
	maxAmount := bigatom.ToInt(nil)
	maxAmount.SetUint64(params.MaxCoinAmount)
	if amount.Cmp(maxAmount) > 0 {
		return 0, 0, clvmerrors.New(clvmerrors.ArgType, "coinid: amount exceeds MAX_COIN_AMOUNT").WithNode(args[2])
	}
	h := sha256.New()
	h.Write(parent)
	h.Write(puzzleHash)
	h.Write(bigatom.FromInt(amount))
	return 0, a.NewAtom(h.Sum(nil)), nil
}
