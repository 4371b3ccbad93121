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

package params

// MaxAtomSize is the largest atom length the format can ever declare,
// 2^32 - 1 (spec.md §6).
const MaxAtomSize = 1<<32 - 1

// MaxDeclaredAtomSize is the threshold at which a declared size prefix
// is rejected outright during parse, before any byte is read, spec.md
// §3/§6. It is intentionally above MaxAtomSize to give room for the
// five-byte size-prefix encoding while still catching adversarial
// six-byte-class prefixes (rejected separately as "too large").
const MaxDeclaredAtomSize = 1 << 34

// MaxCoinAmount bounds the `amount` argument to the coinid operator,
// spec.md §4.6/§6.
const MaxCoinAmount = 1<<64 - 1

// DefaultCostPerSerializedInputByte is the cost-per-input-byte a
// caller is expected to apply before invoking the core (spec.md §6);
// the core itself does not charge this, since it only ever sees
// already-deserialized trees when called as a library, but the
// clvmrun CLI applies it when it has raw input bytes on hand so its
// reported total matches what a full transaction-validation caller
// would see.
const DefaultCostPerSerializedInputByte = 12000

// G1Size and G2Size are the exact atom byte lengths the BLS12-381
// operators require, spec.md §4.6.
const (
	G1Size = 48
	G2Size = 96
)

// CoinIDHashSize is the exact size required for the parent and
// puzzle-hash arguments to coinid, spec.md §4.6.
const CoinIDHashSize = 32

// MaxShiftMagnitude bounds |shift| for ash/lsh, spec.md §4.3.
const MaxShiftMagnitude = 65535
