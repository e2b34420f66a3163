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

// Package crypto exposes Keccak256 hashing as a Go interface, with a
// default adapter backed by golang.org/x/crypto/sha3. The trie package
// takes a Hasher so a host can substitute a hardware-accelerated or test
// double implementation; the interpreter calls Keccak256 directly.
package crypto

import (
	"math/big"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/rlp"
	"golang.org/x/crypto/sha3"
)

// Hasher is a deterministic Keccak256 digest function. Pairing/hash
// precompiles are dispatched
// behind opaque addresses (see core/vm/contracts.go) and are not part
// of this interface.
type Hasher interface {
	Keccak256(data ...[]byte) common.Hash
}

// defaultHasher is the sha3-backed Hasher used unless a caller supplies
// their own.
type defaultHasher struct{}

// Default is the package-level Hasher for callers that don't need to
// inject a test double (trie.New falls back to it). CreateAddress and
// CreateAddress2 call Keccak256 directly rather than going through it.
var Default Hasher = defaultHasher{}

func (defaultHasher) Keccak256(data ...[]byte) common.Hash {
	return Keccak256Hash(data...)
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input
// data, converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// EmptyCodeHash is the Keccak256 hash of the empty string, the CodeHash
// value of accounts without contract code.
var EmptyCodeHash = Keccak256Hash(nil)

// KeccakRLPEmpty is KECCAK256_RLP, the Keccak256 of the RLP encoding of
// the empty byte string — the expected transactionsTrie root of a block
// with no transactions.
var KeccakRLPEmpty = Keccak256Hash(rlp.EncodeBytes(nil))

// CreateAddress creates an Ethereum address given the bytes and the
// nonce, per CREATE (address = keccak256(rlp([sender, nonce]))[12:]).
func CreateAddress(b common.Address, nonce uint64) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{b.Bytes(), new(big.Int).SetUint64(nonce).Bytes()})
	return common.BytesToAddress(Keccak256(data)[12:])
}

// CreateAddress2 creates an Ethereum address given the address bytes,
// the initial contract code's hash and a salt, per CREATE2
// (address = keccak256(0xff ++ sender ++ salt ++ keccak256(init_code))[12:]).
func CreateAddress2(b common.Address, salt [32]byte, inithash []byte) common.Address {
	return common.BytesToAddress(Keccak256([]byte{0xff}, b.Bytes(), salt[:], inithash)[12:])
}
