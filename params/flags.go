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

import (
	"fmt"
	"strings"
)

// Flags is the immutable bit field a caller supplies to a run, spec.md §6.
type Flags uint32

const (
	// STRICT enables reserved-opcode enforcement: any opcode in the
	// soft-fork window that is not individually enabled by another flag
	// is a hard InvalidOperator/ReservedOperator failure rather than a
	// nil-returning no-op.
	STRICT Flags = 1 << iota
	// ENABLE_KECCAK turns on the keccak256 operator.
	ENABLE_KECCAK
	// ENABLE_BLS_OPS turns on the BLS12-381 operator family.
	ENABLE_BLS_OPS
	// ENABLE_SECP_OPS turns on secp256k1_verify / secp256r1_verify.
	ENABLE_SECP_OPS
	// ENFORCE_MINIMAL_ENCODING rejects non-minimally-encoded integer
	// atoms passed as operator arguments, rather than accepting and
	// normalizing them.
	ENFORCE_MINIMAL_ENCODING
	// ENABLE_SOFTFORK_EXTENSIONS lets the softfork operator accept an
	// unrecognized extension id (anything but ExtensionNone) as a no-op
	// charged at its declared cost, instead of failing
	// UnknownSoftforkExtension.
	ENABLE_SOFTFORK_EXTENSIONS
)

var flagNames = map[string]Flags{
	"strict":           STRICT,
	"keccak":           ENABLE_KECCAK,
	"bls":              ENABLE_BLS_OPS,
	"secp":             ENABLE_SECP_OPS,
	"minimal-encoding": ENFORCE_MINIMAL_ENCODING,
	"softfork-ext":     ENABLE_SOFTFORK_EXTENSIONS,
}

// Has reports whether every bit in want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// ParseFlags resolves a comma-separated list of symbolic flag names
// (as accepted by the clvmrun CLI's --flags option) into a Flags
// bitmask. Unknown names are rejected rather than silently ignored.
func ParseFlags(s string) (Flags, error) {
	var out Flags
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		bit, ok := flagNames[name]
		if !ok {
			return 0, fmt.Errorf("params: unknown flag %q", name)
		}
		out |= bit
	}
	return out, nil
}

func (f Flags) String() string {
	var names []string
	for name, bit := range flagNames {
		if f.Has(bit) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
