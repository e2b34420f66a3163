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

// Package common holds the address/hash value types shared across the
// interpreter, state and block-validation packages.
package common

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

// AddressLength is the expected length of an Address, in bytes.
const AddressLength = 20

// HashLength is the expected length of a Hash, in bytes.
const HashLength = 32

// Address represents the 20-byte address of an Ethereum account.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// AddressFromWord masks a 256-bit word down to its low 160 bits, the
// conversion CALL/BALANCE/EXTCODESIZE and friends apply to a stack
// operand before treating it as an address.
func AddressFromWord(w *uint256.Int) Address {
	return BytesToAddress(w.Bytes())
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) Hash() Hash { return BytesToHash(a[:]) }

// Hash represents the 32-byte Keccak256 hash of arbitrary data.
type Hash [HashLength]byte

// BytesToHash returns Hash with value b, cropping from the left if
// b is longer than HashLength and left-padding if shorter.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) String() string { return "0x" + hex.EncodeToString(h[:]) }

// Big returns a new uint256.Int set to the value of h.
func (h Hash) Big() *uint256.Int { return new(uint256.Int).SetBytes(h[:]) }

func (a Address) Format(s fmt.State, c rune) { fmt.Fprint(s, a.String()) }
func (h Hash) Format(s fmt.State, c rune)    { fmt.Fprint(s, h.String()) }
