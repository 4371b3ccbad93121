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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/params"
)

func TestConcat(t *testing.T) {
	a := arena.New()
	_, result, err := runOp(t, params.OpConcat, a, []arena.Handle{a.NewAtom([]byte("foo")), a.NewAtom([]byte("bar"))}, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("foobar"), a.Atom(result))
}

func TestConcatNoArgs(t *testing.T) {
	a := arena.New()
	_, result, err := runOp(t, params.OpConcat, a, nil, 0)
	require.NoError(t, err)
	require.True(t, a.IsNil(result))
}

func TestSubstr(t *testing.T) {
	a := arena.New()
	s := a.NewAtom([]byte("foobar"))
	_, result, err := runOp(t, params.OpSubstr, a, []arena.Handle{s, intAtom(a, 1), intAtom(a, 4)}, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("oob"), a.Atom(result))
}

func TestSubstrDefaultEnd(t *testing.T) {
	a := arena.New()
	s := a.NewAtom([]byte("foobar"))
	_, result, err := runOp(t, params.OpSubstr, a, []arena.Handle{s, intAtom(a, 3)}, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), a.Atom(result))
}

func TestSubstrOutOfRange(t *testing.T) {
	a := arena.New()
	s := a.NewAtom([]byte("foo"))
	_, _, err := runOp(t, params.OpSubstr, a, []arena.Handle{s, intAtom(a, 0), intAtom(a, 10)}, 0)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.InvalidSubstr, ce.Kind)
}

func TestSubstrStartAfterEnd(t *testing.T) {
	a := arena.New()
	s := a.NewAtom([]byte("foo"))
	_, _, err := runOp(t, params.OpSubstr, a, []arena.Handle{s, intAtom(a, 2), intAtom(a, 1)}, 0)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.InvalidSubstr, ce.Kind)
}

func TestStrlen(t *testing.T) {
	a := arena.New()
	s := a.NewAtom([]byte("foobar"))
	_, result, err := runOp(t, params.OpStrlen, a, []arena.Handle{s}, 0)
	require.NoError(t, err)
	require.Equal(t, int64(6), bigatom.ToInt(a.Atom(result)).Int64())
}

func TestGtByte(t *testing.T) {
	a := arena.New()
	x := a.NewAtom([]byte{0x02})
	y := a.NewAtom([]byte{0x01})
	_, result, err := runOp(t, params.OpGtByte, a, []arena.Handle{x, y}, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, a.Atom(result))

	_, result2, err := runOp(t, params.OpGtByte, a, []arena.Handle{y, x}, 0)
	require.NoError(t, err)
	require.True(t, a.IsNil(result2))
}
