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
	"github.com/evmforge/evmcore/params"
	"github.com/holiman/uint256"
)

const (
	Gas1    uint64 = 1
	Gas2    uint64 = 2
	Gas3    uint64 = 3
	Gas5    uint64 = 5
	Gas8    uint64 = 8
	Gas10   uint64 = 10
	Gas15   uint64 = 15
	Gas20   uint64 = 20
	Gas30   uint64 = 30
	Gas50   uint64 = 50
	Gas100  uint64 = 100
	Gas200  uint64 = 200
	Gas300  uint64 = 300
	Gas400  uint64 = 400
	Gas500  uint64 = 500
	Gas2000 uint64 = 2000
	Gas3000 uint64 = 3000
	Gas5000 uint64 = 5000
)

// memoryGasCost reproduces the Yellow Paper's Cmem: the cost to grow
// memory to newMemSize bytes — memory cost is quadratic. It returns
// only the *additional* cost over whatever was already paid;
// the running total is tracked alongside the Memory object since the
// cost is a function of the highest high-water mark, not just the delta.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * params.MemoryGas
		quadCoef := square / params.QuadCoeffDiv
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}

// callGas implements the EIP-150 63/64ths rule: the caller
// may request more gas than it can forward; at most all-but-one-64th of
// the gas remaining after the call's own constant/dynamic cost is paid
// is actually forwarded.
func callGas(isEip150 bool, availableGas, base uint64, callCost *uint256.Int) uint64 {
	if isEip150 {
		availableGas = availableGas - base
		gas := availableGas - availableGas/64
		if !callCost.IsUint64() || gas < callCost.Uint64() {
			return gas
		}
	}
	if callCost.IsUint64() {
		return callCost.Uint64()
	}
	return availableGas
}
