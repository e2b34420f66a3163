// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/crypto"
)

// PrecompiledContract is the dispatch-only surface a precompile
// implements: a fixed gas quote followed by a deterministic Run, addressed by the
// reserved 0x01..0x0a range rather than by ordinary CALL's account-code
// lookup.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// precompiles is the Byzantium-and-later address table. Earlier forks
// (pre-Byzantium lacked BN254/BLAKE2F) are not distinguished: every
// precompile body beyond ecrecover/sha256/ripemd160/identity is a stub
// that reports its gas schedule but returns an error; their full
// cryptographic bodies are treated as delegated to an external crypto
// backend rather than reimplemented from scratch here.
var precompiles = map[common.Address]PrecompiledContract{
	common.BytesToAddress([]byte{1}): ecrecoverPrecompile{},
	common.BytesToAddress([]byte{2}): sha256Precompile{},
	common.BytesToAddress([]byte{3}): ripemd160Precompile{},
	common.BytesToAddress([]byte{4}): identityPrecompile{},
	common.BytesToAddress([]byte{5}): stubPrecompile{name: "modexp", gas: 200},
	common.BytesToAddress([]byte{6}): stubPrecompile{name: "bn256Add", gas: 150},
	common.BytesToAddress([]byte{7}): stubPrecompile{name: "bn256ScalarMul", gas: 6000},
	common.BytesToAddress([]byte{8}): stubPrecompile{name: "bn256Pairing", gas: 45000},
	common.BytesToAddress([]byte{9}): stubPrecompile{name: "blake2f", gas: 0},
	common.BytesToAddress([]byte{10}): stubPrecompile{name: "pointEvaluation", gas: 50000},
}

// PrecompiledAddresses returns the known precompile addresses, used to
// pre-warm the EIP-2929 access list: precompiles are always warm.
func PrecompiledAddresses() []common.Address {
	addrs := make([]common.Address, 0, len(precompiles))
	for a := range precompiles {
		addrs = append(addrs, a)
	}
	return addrs
}

func runPrecompiled(p PrecompiledContract, input []byte, suppliedGas uint64) ([]byte, uint64, error) {
	gasCost := p.RequiredGas(input)
	if suppliedGas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	suppliedGas -= gasCost
	output, err := p.Run(input)
	return output, suppliedGas, err
}

type ecrecoverPrecompile struct{}

func (e ecrecoverPrecompile) RequiredGas(input []byte) uint64 { return 3000 }

// Run recovers the signer address from a (hash, v, r, s) input, the
// behavior the ECRECOVER opcode delegates to this precompile.
func (e ecrecoverPrecompile) Run(input []byte) ([]byte, error) {
	const inputLen = 128
	in := make([]byte, inputLen)
	copy(in, input)

	v := in[63]
	if v != 27 && v != 28 {
		return nil, nil
	}
	sig := make([]byte, 65)
	copy(sig[:32], in[64:96])
	copy(sig[32:64], in[96:128])
	sig[64] = v - 27

	pub, err := recoverPublicKey(in[:32], sig)
	if err != nil {
		return nil, nil
	}
	addr := crypto.Keccak256(pub[1:])[12:]
	return common.BytesToHash(addr).Bytes(), nil
}

func recoverPublicKey(hash, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, errors.New("invalid signature length")
	}
	compactSig := make([]byte, 65)
	compactSig[0] = sig[64] + 27
	copy(compactSig[1:], sig[:64])
	pub, _, err := secp256k1.RecoverCompact(compactSig, hash)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

type sha256Precompile struct{}

func (s sha256Precompile) RequiredGas(input []byte) uint64 {
	return 60 + 12*uint64((len(input)+31)/32)
}

func (s sha256Precompile) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

type ripemd160Precompile struct{}

func (r ripemd160Precompile) RequiredGas(input []byte) uint64 {
	return 600 + 120*uint64((len(input)+31)/32)
}

func (r ripemd160Precompile) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	sum := h.Sum(nil)
	return common.BytesToHash(sum).Bytes(), nil
}

type identityPrecompile struct{}

func (i identityPrecompile) RequiredGas(input []byte) uint64 {
	return 15 + 3*uint64((len(input)+31)/32)
}

func (i identityPrecompile) Run(input []byte) ([]byte, error) {
	return input, nil
}

// stubPrecompile reports the address and schedule of a precompile whose
// body (MODEXP, BN254 arithmetic, BLAKE2F compression, KZG point evaluation)
// delegates to a cryptographic library this core does not vendor; see
// the design notes for which dependency was considered and why its body
// is out of scope here.
type stubPrecompile struct {
	name string
	gas  uint64
}

func (s stubPrecompile) RequiredGas(input []byte) uint64 { return s.gas }

func (s stubPrecompile) Run(input []byte) ([]byte, error) {
	return nil, errors.New("precompile " + s.name + " not implemented")
}
