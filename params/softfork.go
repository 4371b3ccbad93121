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

// SoftforkExtension is a closed enum of recognized softfork extension
// ids (spec.md §4.8, open question c: the port must treat extension
// ids as a versioned enum and refuse to invent new ones).
type SoftforkExtension int64

const (
	// ExtensionNone is the only extension id this port recognizes. A
	// softfork call naming any other id is "unrecognized", handled per
	// ENABLE_SOFTFORK_EXTENSIONS as described in spec.md §4.8.
	ExtensionNone SoftforkExtension = 0
)

// Recognized reports whether id names a known extension.
func Recognized(id int64) bool {
	return SoftforkExtension(id) == ExtensionNone
}
