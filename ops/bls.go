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
	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/params"
)

// Default hash-to-curve domain separation tags: the G1 tag is the
// proof-of-possession (_POP_) ciphersuite tag and the G2 tag is the
// basic (_NUL_) ciphersuite tag (min-pubkey-size: public keys in G1,
// signatures in G2).
const (
	defaultG1DST = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_POP_"
	defaultG2DST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"
)

func init() {
	register(params.OpPointAdd, &Operation{Name: "point_add", BaseCost: costs.PointAddBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opPointAdd})
	register(params.OpPubkeyForExp, &Operation{Name: "pubkey_for_exp", BaseCost: costs.PubkeyForExpBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opPubkeyForExp})
	register(params.OpG1Multiply, &Operation{Name: "g1_multiply", BaseCost: costs.G1MultiplyBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opG1Multiply})
	register(params.OpG2Multiply, &Operation{Name: "g2_multiply", BaseCost: costs.G2MultiplyBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opG2Multiply})
	register(params.OpG1Map, &Operation{Name: "g1_map", BaseCost: costs.G1MapBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opG1Map})
	register(params.OpG2Map, &Operation{Name: "g2_map", BaseCost: costs.G2MapBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opG2Map})
	register(params.OpBLSPairingIdentity, &Operation{Name: "bls_pairing_identity", BaseCost: costs.BLSPairingIdentityBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opBLSPairingIdentity})
	register(params.OpBLSVerify, &Operation{Name: "bls_verify", BaseCost: costs.BLSVerifyBaseCost, Requires: params.ENABLE_BLS_OPS, Run: opBLSVerify})
}

func g1FromAtom(a *arena.Arena, args []arena.Handle, i int, op string) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	b, err := argAtom(a, args, i, op)
	if err != nil {
		return p, err
	}
	if len(b) != params.G1Size {
		return p, clvmerrors.New(clvmerrors.ArgSize, "%s: atom is not G1 size (%d bytes)", op, params.G1Size).WithNode(args[i])
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, clvmerrors.New(clvmerrors.InvalidCurvePoint, "%s: invalid G1 point: %v", op, err).WithNode(args[i])
	}
	return p, nil
}

func g2FromAtom(a *arena.Arena, args []arena.Handle, i int, op string) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	b, err := argAtom(a, args, i, op)
	if err != nil {
		return p, err
	}
	if len(b) != params.G2Size {
		return p, clvmerrors.New(clvmerrors.ArgSize, "%s: atom is not G2 size (%d bytes)", op, params.G2Size).WithNode(args[i])
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, clvmerrors.New(clvmerrors.InvalidCurvePoint, "%s: invalid G2 point: %v", op, err).WithNode(args[i])
	}
	return p, nil
}

func opPointAdd(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	var acc bls12381.G1Affine
	for i := range args {
		p, err := g1FromAtom(a, args, i, "point_add")
		if err != nil {
			return 0, 0, err
		}
		acc.Add(&acc, &p)
	}
	delta := uint64(len(args)) * costs.PointAddCostPerArg
	out := acc.Bytes()
	return delta, a.NewAtom(out[:]), nil
}

func opPubkeyForExp(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("pubkey_for_exp", args, 1); err != nil {
		return 0, 0, err
	}
	b, err := argAtom(a, args, 0, "pubkey_for_exp")
	if err != nil {
		return 0, 0, err
	}
	exp := bigatom.ToInt(b)
	order := ecc.BLS12_381.ScalarField()
	exp.Mod(exp, order)
	_, _, g1Gen, _ := bls12381.Generators()
	var result bls12381.G1Affine
	result.ScalarMultiplication(&g1Gen, exp)
	delta := uint64(len(b)) * costs.PubkeyForExpCostPerByte
	out := result.Bytes()
	return delta, a.NewAtom(out[:]), nil
}

func opG1Multiply(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("g1_multiply", args, 2); err != nil {
		return 0, 0, err
	}
	p, err := g1FromAtom(a, args, 0, "g1_multiply")
	if err != nil {
		return 0, 0, err
	}
	scalarB, err := argAtom(a, args, 1, "g1_multiply")
	if err != nil {
		return 0, 0, err
	}
	scalar := bigatom.ToInt(scalarB)
	var result bls12381.G1Affine
	result.ScalarMultiplication(&p, scalar)
	delta := uint64(len(scalarB)) * costs.G1MultiplyCostPerByte
	out := result.Bytes()
	return delta, a.NewAtom(out[:]), nil
}

func opG2Multiply(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgc("g2_multiply", args, 2); err != nil {
		return 0, 0, err
	}
	p, err := g2FromAtom(a, args, 0, "g2_multiply")
	if err != nil {
		return 0, 0, err
	}
	scalarB, err := argAtom(a, args, 1, "g2_multiply")
	if err != nil {
		return 0, 0, err
	}
	scalar := bigatom.ToInt(scalarB)
	var result bls12381.G2Affine
	result.ScalarMultiplication(&p, scalar)
	delta := uint64(len(scalarB)) * costs.G2MultiplyCostPerByte
	out := result.Bytes()
	return delta, a.NewAtom(out[:]), nil
}

func opG1Map(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgcRange("g1_map", args, 1, 2); err != nil {
		return 0, 0, err
	}
	msg, err := argAtom(a, args, 0, "g1_map")
	if err != nil {
		return 0, 0, err
	}
	dst := []byte(defaultG1DST)
	if len(args) == 2 {
		dst, err = argAtom(a, args, 1, "g1_map")
		if err != nil {
			return 0, 0, err
		}
	}
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return 0, 0, clvmerrors.New(clvmerrors.InvalidCurvePoint, "g1_map: %v", err)
	}
	delta := uint64(len(msg)) * costs.G1MapCostPerByte
	out := p.Bytes()
	return delta, a.NewAtom(out[:]), nil
}

func opG2Map(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if err := requireArgcRange("g2_map", args, 1, 2); err != nil {
		return 0, 0, err
	}
	msg, err := argAtom(a, args, 0, "g2_map")
	if err != nil {
		return 0, 0, err
	}
	dst := []byte(defaultG2DST)
	if len(args) == 2 {
		dst, err = argAtom(a, args, 1, "g2_map")
		if err != nil {
			return 0, 0, err
		}
	}
	p, err := bls12381.HashToG2(msg, dst)
	if err != nil {
		return 0, 0, clvmerrors.New(clvmerrors.InvalidCurvePoint, "g2_map: %v", err)
	}
	delta := uint64(len(msg)) * costs.G2MapCostPerByte
	out := p.Bytes()
	return delta, a.NewAtom(out[:]), nil
}

// opBLSPairingIdentity checks that the product of pairings of its
// (G1, G2) argument pairs equals the identity element of GT, spec.md
// §4.6.
func opBLSPairingIdentity(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if len(args)%2 != 0 {
		return 0, 0, clvmerrors.New(clvmerrors.ArgType, "bls_pairing_identity: arguments come in (G1, G2) pairs")
	}
	n := len(args) / 2
	g1s := make([]bls12381.G1Affine, n)
	g2s := make([]bls12381.G2Affine, n)
	for i := 0; i < n; i++ {
		g1, err := g1FromAtom(a, args, 2*i, "bls_pairing_identity")
		if err != nil {
			return 0, 0, err
		}
		g2, err := g2FromAtom(a, args, 2*i+1, "bls_pairing_identity")
		if err != nil {
			return 0, 0, err
		}
		g1s[i], g2s[i] = g1, g2
	}
	product, err := bls12381.Pair(g1s, g2s)
	if err != nil {
		return 0, 0, clvmerrors.New(clvmerrors.InternalError, "bls_pairing_identity: pairing failed: %v", err)
	}
	delta := uint64(n) * costs.BLSPairingIdentityCostPerArg
	var one bls12381.GT
	one.SetOne()
	if product.Equal(&one) {
		return delta, a.NewAtom([]byte{1}), nil
	}
	return delta, arena.NilHandle(), nil
}

// opBLSVerify checks a min-pubkey-size aggregate BLS signature over a
// list of (pubkey, message) pairs, spec.md §4.6: the first argument is
// the G2 signature, followed by (pk, msg) pairs.
func opBLSVerify(a *arena.Arena, args []arena.Handle, flags params.Flags) (uint64, arena.Handle, error) {
	if len(args) < 1 || len(args)%2 != 1 {
		return 0, 0, clvmerrors.New(clvmerrors.ArgType, "bls_verify: signature followed by (pk, msg) pairs required")
	}
	sig, err := g2FromAtom(a, args, 0, "bls_verify")
	if err != nil {
		return 0, 0, err
	}
	n := (len(args) - 1) / 2
	g1s := make([]bls12381.G1Affine, 0, n+1)
	g2s := make([]bls12381.G2Affine, 0, n+1)
	for i := 0; i < n; i++ {
		pk, err := g1FromAtom(a, args, 1+2*i, "bls_verify")
		if err != nil {
			return 0, 0, err
		}
		msg, err := argAtom(a, args, 1+2*i+1, "bls_verify")
		if err != nil {
			return 0, 0, err
		}
		h, err := bls12381.HashToG2(msg, []byte(defaultG2DST))
		if err != nil {
			return 0, 0, clvmerrors.New(clvmerrors.InvalidCurvePoint, "bls_verify: %v", err)
		}
		g1s = append(g1s, pk)
		g2s = append(g2s, h)
	}
	_, _, g1Gen, _ := bls12381.Generators()
	var negG1Gen bls12381.G1Affine
	negG1Gen.Neg(&g1Gen)
	g1s = append(g1s, negG1Gen)
	g2s = append(g2s, sig)

	product, err := bls12381.Pair(g1s, g2s)
	if err != nil {
		return 0, 0, clvmerrors.New(clvmerrors.InternalError, "bls_verify: pairing failed: %v", err)
	}
	delta := uint64(n) * costs.BLSVerifyCostPerArg
	var one bls12381.GT
	one.SetOne()
	if !product.Equal(&one) {
		return 0, 0, clvmerrors.New(clvmerrors.SignatureVerifyFailed, "bls_verify: signature verification failed")
	}
	return delta, a.NewAtom([]byte{1}), nil
}
