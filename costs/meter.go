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

// Package costs holds the per-operator cost schedule (spec.md §4.7) and
// the running cost accumulator every Run uses to enforce it.
package costs

import (
	"github.com/holiman/uint256"

	"github.com/chia-network/clvm-go/clvmerrors"
)

// Fixed per-instruction costs, spec.md §4.4/§4.7.
const (
	QuoteCost = 20
	ApplyCost = 90
	IfCost    = 33
	ConsCost  = 50
	FirstCost = 30
	RestCost  = 30
	ListpCost = 19

	PathLookupBaseCost        = 40
	PathLookupCostPerLeg      = 4
	PathLookupCostPerZeroByte = 4
)

// Variable-cost schedules: base + per-argument + per-byte-of-input
// (and, where noted, per-byte-of-output), spec.md §4.7.
const (
	ArithBaseCost    = 99
	ArithCostPerArg  = 320
	ArithCostPerByte = 3

	LogBaseCost       = 100
	LogCostPerArg     = 264
	LogCostPerByte    = 3
	LogNotBaseCost    = 331
	LogNotCostPerByte = 3

	GrBaseCost     = 498
	GrCostPerByte  = 2
	GrsBaseCost    = 117
	GrsCostPerByte = 1
	EqBaseCost     = 117
	EqCostPerByte  = 1

	StrlenBaseCost    = 173
	StrlenCostPerByte = 1
	ConcatBaseCost    = 142
	ConcatCostPerArg  = 135
	ConcatCostPerByte = 3
	SubstrCost        = 1

	MulBaseCost                 = 92
	MulCostPerOp                = 885
	MulLinearCostPerByte        = 6
	MulSquareCostPerByteDivider = 128

	DivModBaseCost    = 1116
	DivModCostPerByte = 6
	DivBaseCost       = 988
	DivCostPerByte    = 4
	ModBaseCost       = 755
	ModCostPerByte    = 4
	ModPowBaseCost    = 1200
	ModPowCostPerByte = 6

	AshiftBaseCost    = 596
	AshiftCostPerByte = 3
	LshiftBaseCost    = 277
	LshiftCostPerByte = 3

	BoolBaseCost   = 200
	BoolCostPerArg = 300
	NotBaseCost    = 61
	NotCostPerBit  = 2

	Sha256BaseCost    = 87
	Sha256CostPerArg  = 134
	Sha256CostPerByte = 2

	Keccak256BaseCost    = 87
	Keccak256CostPerArg  = 134
	Keccak256CostPerByte = 2

	PointAddBaseCost   = 101094
	PointAddCostPerArg = 1343980

	PubkeyForExpBaseCost    = 1325730
	PubkeyForExpCostPerByte = 38

	G1MultiplyBaseCost    = 101094
	G1MultiplyCostPerByte = 1024
	G2MultiplyBaseCost    = 200000
	G2MultiplyCostPerByte = 2048
	G1MapBaseCost         = 80000
	G1MapCostPerByte      = 100
	G2MapBaseCost         = 160000
	G2MapCostPerByte      = 200

	BLSPairingIdentityBaseCost   = 2000000
	BLSPairingIdentityCostPerArg = 700000
	BLSVerifyBaseCost            = 1200000
	BLSVerifyCostPerArg          = 850000

	Secp256k1VerifyCost = 1300000
	Secp256r1VerifyCost = 1300000

	CoinIDCost = 500

	SoftforkBaseCost = 10

	// UnknownOpcodeCost is the fixed cost charged when an unrecognized
	// opcode in the soft-fork window returns nil as a no-op, spec.md
	// §4.7.
	UnknownOpcodeCost = 1
)

// Meter is the running cost accumulator for one run_program call. It
// uses a 256-bit accumulator so that even a maximally adversarial
// per-byte charge (e.g. a 2^32-byte atom times a three-digit per-byte
// constant) cannot wrap a 64-bit counter and mask a real CostExceeded
// condition.
type Meter struct {
	max uint64
	acc uint256.Int
}

// New returns a Meter that fails once its accumulated cost exceeds max.
func New(max uint64) *Meter {
	return &Meter{max: max}
}

// Charge adds delta to the running cost and fails with CostExceeded if
// the new total exceeds the configured max, clamping the reported cost
// to max+1 as spec.md §4.7/§8 requires.
func (m *Meter) Charge(delta uint64) error {
	m.acc.Add(&m.acc, uint256.NewInt(delta))
	var maxBig uint256.Int
	maxBig.SetUint64(m.max)
	if m.acc.Cmp(&maxBig) > 0 {
		return clvmerrors.NewCostExceeded(m.max + 1)
	}
	return nil
}

// Cost returns the current accumulated cost. Valid to call at any time;
// once Charge has returned a CostExceeded error the accumulator is left
// at whatever value pushed it over (the caller reports max+1 instead,
// per WithCost on the returned error).
func (m *Meter) Cost() uint64 {
	return m.acc.Uint64()
}

// Max returns the configured ceiling.
func (m *Meter) Max() uint64 { return m.max }
