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

// Package bigatom treats atom byte strings as arbitrary-precision,
// big-endian, two's-complement signed integers with a canonical
// minimal encoding, spec.md §3.
package bigatom

import "math/big"

// ToInt decodes bytes as a big-endian two's-complement signed integer.
// The empty slice decodes to zero. Any encoding is accepted; callers
// that must enforce minimal encoding call IsMinimal separately.
func ToInt(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	n := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		// Negative: n currently holds the unsigned magnitude of the
		// two's-complement bit pattern; subtract 2^(8*len(b)).
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		n.Sub(n, mod)
	}
	return n
}

// FromInt encodes n as the canonical minimal big-endian two's-
// complement atom. Zero encodes to the empty slice.
func FromInt(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// Negative: compute the two's-complement magnitude at the smallest
	// byte length that represents n with a set sign bit.
	bitLen := n.BitLen()
	nBytes := bitLen/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*nBytes))
	twosComp := new(big.Int).Add(mod, n) // mod + n, n negative
	b := twosComp.Bytes()
	for len(b) < nBytes {
		b = append([]byte{0xFF}, b...)
	}
	return trimNegative(b)
}

// trimNegative drops redundant leading 0xFF bytes from a negative
// two's-complement encoding, keeping it minimal (spec.md §3: remove a
// leading 0xFF if the next byte also has its high bit set).
func trimNegative(b []byte) []byte {
	for len(b) > 1 && b[0] == 0xFF && b[1]&0x80 != 0 {
		b = b[1:]
	}
	return b
}

// IsMinimal reports whether b is the canonical minimal encoding of the
// integer it represents (spec.md §3): no leading 0x00 unless the next
// byte's high bit is set, and no leading 0xFF unless the next byte's
// high bit is clear.
func IsMinimal(b []byte) bool {
	if len(b) < 2 {
		// A lone 0x00 encodes zero, whose canonical form is the empty atom.
		return len(b) == 0 || b[0] != 0x00
	}
	if b[0] == 0x00 && b[1]&0x80 == 0 {
		return false
	}
	if b[0] == 0xFF && b[1]&0x80 != 0 {
		return false
	}
	return true
}

// Normalize returns the minimal encoding equivalent to b, stripping
// any redundant leading byte. Used by callers who accept any encoding
// but must produce minimal output (spec.md §3: "Producers must emit
// minimal form").
func Normalize(b []byte) []byte {
	return FromInt(ToInt(b))
}
