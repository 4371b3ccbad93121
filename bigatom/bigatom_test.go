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

package bigatom

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromIntToInt(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, nil},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x00, 0x80}},
		{-1, []byte{0xFF}},
		{-128, []byte{0x80}},
		{-129, []byte{0xFF, 0x7F}},
		{256, []byte{0x01, 0x00}},
		{-256, []byte{0xFF, 0x00}},
		{32767, []byte{0x7F, 0xFF}},
		{-32768, []byte{0x80, 0x00}},
	}
	for _, c := range cases {
		got := FromInt(big.NewInt(c.n))
		require.Equal(t, c.want, got, "FromInt(%d)", c.n)
		require.Equal(t, big.NewInt(c.n), ToInt(c.want), "ToInt(FromInt(%d))", c.n)
		require.True(t, IsMinimal(got), "FromInt(%d) must be minimal", c.n)
	}
}

func TestIsMinimal(t *testing.T) {
	require.True(t, IsMinimal(nil))
	require.True(t, IsMinimal([]byte{0x7F}))
	require.False(t, IsMinimal([]byte{0x00, 0x01})) // redundant leading zero
	require.True(t, IsMinimal([]byte{0x00, 0x80}))  // needed to keep sign positive
	require.False(t, IsMinimal([]byte{0xFF, 0x80})) // redundant leading 0xFF
	require.True(t, IsMinimal([]byte{0xFF, 0x7F}))  // needed: 0x7F alone would be positive
}

func TestNormalize(t *testing.T) {
	require.Equal(t, []byte{0x01}, Normalize([]byte{0x00, 0x01}))
	require.Equal(t, []byte{0x80}, Normalize([]byte{0xFF, 0x80}))
	require.Nil(t, Normalize([]byte{0x00, 0x00}))
}

func TestRoundTripLargeMagnitude(t *testing.T) {
	n := new(big.Int)
	n.Exp(big.NewInt(2), big.NewInt(300), nil)
	n.Neg(n)
	b := FromInt(n)
	require.True(t, IsMinimal(b))
	require.Equal(t, n, ToInt(b))
}
