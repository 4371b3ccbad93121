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

	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/params"
)

func TestLookupKnownOpcode(t *testing.T) {
	op, unknown, err := Lookup(byte(params.OpAdd), 0)
	require.NoError(t, err)
	require.False(t, unknown)
	require.Equal(t, "+", op.Name)
}

func TestLookupPastAllKnownOpcodesIsUnknown(t *testing.T) {
	op, unknown, err := Lookup(0xFE, 0)
	require.NoError(t, err)
	require.True(t, unknown)
	require.Nil(t, op)
}

func TestLookupGatedOpcodeWithoutStrictIsUnknown(t *testing.T) {
	op, unknown, err := Lookup(byte(params.OpBLSVerify), 0)
	require.NoError(t, err)
	require.True(t, unknown)
	require.Nil(t, op)
}

func TestLookupGatedOpcodeWithStrictIsReservedOperator(t *testing.T) {
	_, _, err := Lookup(byte(params.OpBLSVerify), params.STRICT)
	require.Error(t, err)
	ce, ok := err.(*clvmerrors.Error)
	require.True(t, ok)
	require.Equal(t, clvmerrors.ReservedOperator, ce.Kind)
}

func TestLookupGatedOpcodeWithFlagEnabled(t *testing.T) {
	op, unknown, err := Lookup(byte(params.OpSecp256k1Verify), params.ENABLE_SECP_OPS)
	require.NoError(t, err)
	require.False(t, unknown)
	require.Equal(t, "secp256k1_verify", op.Name)
}
