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

// Package params holds the opcode, flag, and size constants shared by
// every clvm-go package, a chain-config-style table of constants.
package params

// Opcode identifies a single operator by its one-byte atom value.
type Opcode byte

// Core opcode set, spec.md §6.
const (
	OpQuote Opcode = 0x01 // q
	OpApply Opcode = 0x02 // a
	OpIf    Opcode = 0x03 // i
	OpCons  Opcode = 0x04 // c
	OpFirst Opcode = 0x05 // f
	OpRest  Opcode = 0x06 // r
	OpListp Opcode = 0x07 // l
	OpRaise Opcode = 0x08 // x

	OpEq     Opcode = 0x09 // =
	OpGt     Opcode = 0x0A // >
	OpGtByte Opcode = 0x0B // >s
	OpSha256 Opcode = 0x0C // sha256
	OpSubstr Opcode = 0x0D // substr
	OpStrlen Opcode = 0x0E // strlen
	OpConcat Opcode = 0x0F // concat

	OpAdd    Opcode = 0x10 // +
	OpSub    Opcode = 0x11 // -
	OpMul    Opcode = 0x12 // *
	OpDiv    Opcode = 0x13 // div
	OpDivmod Opcode = 0x14 // divmod

	OpAsh Opcode = 0x15 // ash
	OpLsh Opcode = 0x16 // lsh

	OpLogAnd Opcode = 0x17 // logand
	OpLogIor Opcode = 0x18 // logior
	OpLogXor Opcode = 0x19 // logxor
	OpLogNot Opcode = 0x1A // lognot

	OpMod    Opcode = 0x1B // mod
	OpModPow Opcode = 0x1C // modpow

	OpPointAdd     Opcode = 0x1D // point_add
	OpPubkeyForExp Opcode = 0x1E // pubkey_for_exp

	OpNot Opcode = 0x1F // not
	OpAny Opcode = 0x20 // any
	OpAll Opcode = 0x21 // all

	OpSoftfork Opcode = 0x22 // softfork

	// The soft-fork reserved window for genuinely new opcodes begins
	// just past the core set (spec.md §6) and runs to the end of the
	// byte range, gated by the STRICT flag and the per-extension flag
	// bits.
	SoftforkWindowStart Opcode = 0x23
)

// Extended opcode set — enabled conditionally by flags.ENABLE_KECCAK /
// ENABLE_BLS_OPS / ENABLE_SECP_OPS. These live just past the core set
// at bytes the reference reserves for post-soft-fork behavior, spec.md
// §4.6–§4.8.
const (
	OpKeccak256          Opcode = 0x24
	OpBLSPairingIdentity Opcode = 0x25
	OpBLSVerify          Opcode = 0x26
	OpG1Multiply         Opcode = 0x27
	OpG1Map              Opcode = 0x28
	OpG2Multiply         Opcode = 0x29
	OpG2Map              Opcode = 0x2A
	OpSecp256k1Verify    Opcode = 0x2B
	OpSecp256r1Verify    Opcode = 0x2C
	OpCoinID             Opcode = 0x2D
)

// Names maps opcodes to their surface-syntax mnemonic, used by the CLI
// dumper and by error messages.
var Names = map[Opcode]string{
	OpQuote: "q", OpApply: "a", OpIf: "i", OpCons: "c", OpFirst: "f",
	OpRest: "r", OpListp: "l", OpRaise: "x", OpEq: "=", OpGt: ">",
	OpGtByte: ">s", OpSha256: "sha256", OpSubstr: "substr", OpStrlen: "strlen",
	OpConcat: "concat", OpAsh: "ash", OpLsh: "lsh", OpAdd: "+", OpSub: "-",
	OpMul: "*", OpDiv: "div", OpDivmod: "divmod", OpLogAnd: "logand",
	OpLogIor: "logior", OpLogXor: "logxor", OpLogNot: "lognot", OpMod: "mod",
	OpModPow: "modpow", OpPointAdd: "point_add", OpPubkeyForExp: "pubkey_for_exp",
	OpNot: "not", OpAny: "any", OpAll: "all", OpSoftfork: "softfork",
	OpKeccak256: "keccak256", OpBLSPairingIdentity: "bls_pairing_identity",
	OpBLSVerify: "bls_verify", OpG1Multiply: "g1_multiply", OpG1Map: "g1_map",
	OpG2Multiply: "g2_multiply", OpG2Map: "g2_map",
	OpSecp256k1Verify: "secp256k1_verify", OpSecp256r1Verify: "secp256r1_verify",
	OpCoinID: "coinid",
}
