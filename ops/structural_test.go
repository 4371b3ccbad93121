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
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/params"
)

func TestIf(t *testing.T) {
	a := arena.New()
	then := a.NewAtom([]byte("then"))
	els := a.NewAtom([]byte("else"))
	_, result, err := runOp(t, params.OpIf, a, []arena.Handle{intAtom(a, 1), then, els}, 0)
	require.NoError(t, err)
	require.Equal(t, then, result)

	_, result2, err := runOp(t, params.OpIf, a, []arena.Handle{arena.NilHandle(), then, els}, 0)
	require.NoError(t, err)
	require.Equal(t, els, result2)
}

func TestCons(t *testing.T) {
	a := arena.New()
	x := a.NewAtom([]byte("x"))
	y := a.NewAtom([]byte("y"))
	_, result, err := runOp(t, params.OpCons, a, []arena.Handle{x, y}, 0)
	require.NoError(t, err)
	first, rest := a.Pair(result)
	require.Equal(t, x, first)
	require.Equal(t, y, rest)
}

func TestFirstRest(t *testing.T) {
	a := arena.New()
	x := a.NewAtom([]byte("x"))
	y := a.NewAtom([]byte("y"))
	pair := a.NewPair(x, y)

	_, result, err := runOp(t, params.OpFirst, a, []arena.Handle{pair}, 0)
	require.NoError(t, err)
	require.Equal(t, x, result)

	_, result2, err := runOp(t, params.OpRest, a, []arena.Handle{pair}, 0)
	require.NoError(t, err)
	require.Equal(t, y, result2)
}

func TestFirstOfAtomFails(t *testing.T) {
	a := arena.New()
	_, _, err := runOp(t, params.OpFirst, a, []arena.Handle{intAtom(a, 5)}, 0)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.FirstOfNonCons, ce.Kind)
}

func TestRestOfAtomFails(t *testing.T) {
	a := arena.New()
	_, _, err := runOp(t, params.OpRest, a, []arena.Handle{intAtom(a, 5)}, 0)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.RestOfNonCons, ce.Kind)
}

func TestListp(t *testing.T) {
	a := arena.New()
	pair := a.NewPair(intAtom(a, 1), arena.NilHandle())
	_, result, err := runOp(t, params.OpListp, a, []arena.Handle{pair}, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, a.Atom(result))

	_, result2, err := runOp(t, params.OpListp, a, []arena.Handle{intAtom(a, 5)}, 0)
	require.NoError(t, err)
	require.True(t, a.IsNil(result2))
}

func TestRaiseCarriesConsListPayload(t *testing.T) {
	a := arena.New()
	foo := a.NewAtom([]byte("foo"))
	bar := a.NewAtom([]byte("bar"))
	_, _, err := runOp(t, params.OpRaise, a, []arena.Handle{foo, bar}, 0)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.ClvmRaise, ce.Kind)

	payload, ok := ce.Node.(arena.Handle)
	require.True(t, ok)
	first, rest := a.Pair(payload)
	require.Equal(t, []byte("foo"), a.Atom(first))
	second, tail := a.Pair(rest)
	require.Equal(t, []byte("bar"), a.Atom(second))
	require.True(t, a.IsNil(tail))
}

func TestRaiseNoArgsPayloadIsNil(t *testing.T) {
	a := arena.New()
	_, _, err := runOp(t, params.OpRaise, a, nil, 0)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	payload, ok := ce.Node.(arena.Handle)
	require.True(t, ok)
	require.True(t, a.IsNil(payload))
}
