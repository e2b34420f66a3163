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
	"github.com/holiman/uint256"
)

// Memory is the byte-addressed, word-billed byte array the interpreter
// gives each call frame. It only ever grows, in 32-byte words, and the
// quadratic expansion cost (the Cmem formula) is billed by the caller
// before Resize is invoked.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

func NewMemory() *Memory {
	return &Memory{}
}

// Resize grows m to size bytes, rounded by the caller to a word boundary.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// Set copies len(value) bytes into m starting at offset. Caller must have
// already grown m to fit.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("invalid memory: store bounds exceeded")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 sets the 32 bytes starting at offset to the big-endian encoding
// of val, as used by MSTORE.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store bounds exceeded")
	}
	b32 := val.Bytes32()
	copy(m.store[offset:offset+32], b32[:])
}

// Copy implements MCOPY (EIP-5656): an overlap-safe memmove within m.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}

// GetCopy returns a freshly allocated copy of size bytes starting at offset.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		cpy := make([]byte, size)
		copy(cpy, m.store[offset:offset+size])
		return cpy
	}
	return nil
}

// GetPtr returns a slice view into m, size bytes starting at offset.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		return m.store[offset : offset+size]
	}
	return nil
}

func (m *Memory) Len() int {
	return len(m.store)
}

func (m *Memory) Data() []byte {
	return m.store
}

// toWordSize rounds size up to the nearest multiple of 32, since the
// Cmem formula is given in words, not bytes.
func toWordSize(size uint64) uint64 {
	if size > 0xffffffffffffffe0 {
		// would overflow when adding 31 below; memory-expansion gas
		// costing will reject this size before Resize is ever called.
		return 0xffffffffffffffff / 32
	}
	return (size + 31) / 32
}
