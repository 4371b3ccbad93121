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

package serialize

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/clvmerrors"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestParseSerializeRoundTrip(t *testing.T) {
	cases := []string{
		"80",         // nil
		"01",         // atom 1
		"7f",         // atom 0x7f
		"8180",       // atom [0x80] (one byte, length-prefixed since > 0x7f)
		"ff8080",     // (nil . nil)
		"ff01ff0280", // (1 2)
	}
	for _, h := range cases {
		data := mustHex(t, h)
		a := arena.New()
		node, consumed, err := Parse(a, data)
		require.NoError(t, err, h)
		require.Equal(t, len(data), consumed, h)
		require.Equal(t, data, Serialize(a, node), h)
	}
}

func TestParseThenSerializeEqualTree(t *testing.T) {
	// (+ 2 5), spec.md §8 scenario 1's program.
	data := mustHex(t, "ff10ff02ff0580")
	a := arena.New()
	node, consumed, err := Parse(a, data)
	require.NoError(t, err)
	require.Equal(t, len(data), consumed)
	require.True(t, a.IsPair(node))
	require.Equal(t, data, Serialize(a, node))
}

func TestParseRejectsDeclaredSizeTooLarge(t *testing.T) {
	// spec.md §8 scenario 6: fc8000000000 declares an atom >= 2^34.
	data := mustHex(t, "fc8000000000")
	a := arena.New()
	_, _, err := Parse(a, data)
	require.Error(t, err)
	cerr, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.TooLarge, cerr.Kind)
}

func TestParseTruncatedInput(t *testing.T) {
	a := arena.New()
	_, _, err := Parse(a, mustHex(t, "ff80"))
	require.Error(t, err)
	cerr := err.(*clvmerrors.Error)
	require.Equal(t, clvmerrors.BadEncoding, cerr.Kind)
}

func TestParseExactTrailing(t *testing.T) {
	a := arena.New()
	_, err := ParseExact(a, mustHex(t, "8080"))
	require.Error(t, err)
	cerr := err.(*clvmerrors.Error)
	require.Equal(t, clvmerrors.Trailing, cerr.Kind)
}

func TestSerializedLengthMatchesParse(t *testing.T) {
	data := mustHex(t, "ff01ff0280")
	n, err := SerializedLength(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
}

func TestSerializedLengthTooLarge(t *testing.T) {
	_, err := SerializedLength(mustHex(t, "fc8000000000"))
	require.Error(t, err)
	require.Equal(t, clvmerrors.TooLarge, err.(*clvmerrors.Error).Kind)
}

func TestIndexedParseAtomOffsets(t *testing.T) {
	// "foo" encodes as 0x83 'f' 'o' 'o'
	entries, consumed, err := IndexedParse(mustHex(t, "83666f6f"))
	require.NoError(t, err)
	require.Equal(t, 4, consumed)
	require.Len(t, entries, 1)
	require.False(t, entries[0].IsPair)
	require.Equal(t, 0, entries[0].Start)
	require.Equal(t, 4, entries[0].End)
	require.Equal(t, 1, entries[0].Extra) // payload begins 1 byte in
}

func TestIndexedParsePairStructure(t *testing.T) {
	// (1 2) == ff 01 ff 02 80
	entries, consumed, err := IndexedParse(mustHex(t, "ff01ff0280"))
	require.NoError(t, err)
	require.Equal(t, 5, consumed)
	require.Len(t, entries, 4)
	// entry 0: outer pair (1 . (2 . nil)), left child is entry 1, right is entry[Extra]
	require.True(t, entries[0].IsPair)
	require.Equal(t, entries[0].Start+1 /* marker byte */, entries[1].Start)
	require.Equal(t, 2, entries[0].Extra) // rest child (2 . nil) starts at entry index 2
	// entry 1: atom 1
	require.False(t, entries[1].IsPair)
	require.Equal(t, 1, entries[1].Start)
	require.Equal(t, 2, entries[1].End)
	// entry 2: inner pair (2 . nil)
	require.True(t, entries[2].IsPair)
	require.Equal(t, 3, entries[2].Extra) // nil child at entry index 3
	// entry 3: atom nil
	require.False(t, entries[3].IsPair)
	require.Equal(t, entries[3].End, entries[3].Start+1)
}

func TestParseNonCanonicalDuplicateDoesNotClobberSiblingCache(t *testing.T) {
	// Same 3-byte atom value encoded two different ways: a non-canonical
	// two-byte-length-prefix form, and the canonical one-byte-length
	// form. Both dedupe to the same arena handle (small-atom fast
	// path), so the serialization cache can only remember one of the
	// two encodings; it must consistently remember whichever occurrence
	// was freshly allocated (the first one), regardless of which
	// occurrence happens to finish parsing last.
	payload := []byte{0x01, 0x02, 0x03}
	nonCanonical := append([]byte{0xC0, 0x03}, payload...)
	canonical := append([]byte{0x83}, payload...)

	firstThenCanonical := append([]byte{0xFF}, append(append([]byte{}, nonCanonical...), canonical...)...)
	a1 := arena.New()
	node1, _, err := Parse(a1, firstThenCanonical)
	require.NoError(t, err)
	first1, rest1 := a1.Pair(node1)
	require.Equal(t, first1, rest1, "both occurrences dedupe to the same handle")
	require.Equal(t, nonCanonical, Serialize(a1, first1), "the fresh (first-parsed) encoding wins")
	require.Equal(t, nonCanonical, Serialize(a1, rest1), "the dedup hit must not clobber it with the last-parsed encoding")

	canonicalThenNonCanonical := append([]byte{0xFF}, append(append([]byte{}, canonical...), nonCanonical...)...)
	a2 := arena.New()
	node2, _, err := Parse(a2, canonicalThenNonCanonical)
	require.NoError(t, err)
	first2, rest2 := a2.Pair(node2)
	require.Equal(t, first2, rest2)
	require.Equal(t, canonical, Serialize(a2, first2), "the fresh (first-parsed) encoding wins here too")
	require.Equal(t, canonical, Serialize(a2, rest2))
}

func TestWriteAtomSizePrefixBoundaries(t *testing.T) {
	a := arena.New()
	cases := []int{0, 1, 0x3F, 0x40, 0x1FFF, 0x2000, 0x100000}
	for _, n := range cases {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i + 1)
		}
		h := a.NewAtom(b)
		out := Serialize(a, h)
		back, consumed, err := Parse(arena.New(), out)
		_ = back
		require.NoError(t, err, n)
		require.Equal(t, len(out), consumed, n)
	}
}
