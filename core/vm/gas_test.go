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
	"testing"

	"github.com/holiman/uint256"
)

func TestCallGasPreEIP150RequestsFullAmount(t *testing.T) {
	requested := uint256.NewInt(1000)
	got := callGas(false, 5000, 0, requested)
	if got != 1000 {
		t.Errorf("callGas pre-EIP150 = %d, want 1000 (the full requested amount)", got)
	}
}

func TestCallGasEIP150CapsAtSixtyThreeSixtyFourths(t *testing.T) {
	// availableGas=6400, base=0 -> forwardable = 6400 - 100 = 6300.
	requested := uint256.NewInt(1_000_000)
	got := callGas(true, 6400, 0, requested)
	want := uint64(6400 - 6400/64)
	if got != want {
		t.Errorf("callGas EIP150 over-request = %d, want %d", got, want)
	}
}

func TestCallGasEIP150HonorsSmallerRequest(t *testing.T) {
	requested := uint256.NewInt(100)
	got := callGas(true, 6400, 0, requested)
	if got != 100 {
		t.Errorf("callGas EIP150 under-request = %d, want 100", got)
	}
}

func TestCallGasEIP150DeductsBaseBeforeCapping(t *testing.T) {
	requested := uint256.NewInt(1_000_000)
	got := callGas(true, 6464, 64, requested)
	want := uint64(6400 - 6400/64)
	if got != want {
		t.Errorf("callGas EIP150 with base deduction = %d, want %d", got, want)
	}
}
