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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemoryResize(t *testing.T) {
	mem := NewMemory()
	if mem.Len() != 0 {
		t.Fatalf("initial Len() = %d, want 0", mem.Len())
	}
	mem.Resize(64)
	if mem.Len() != 64 {
		t.Fatalf("after Resize(64), Len() = %d, want 64", mem.Len())
	}
	mem.Resize(32)
	if mem.Len() != 64 {
		t.Fatalf("Resize(32) on a 64-byte memory should not shrink it, got %d", mem.Len())
	}
}

func TestMemorySetAndGetCopy(t *testing.T) {
	mem := NewMemory()
	mem.Resize(64)

	data := []byte{0xde, 0xad, 0xbe, 0xef}
	mem.Set(10, uint64(len(data)), data)

	got := mem.GetCopy(10, int64(len(data)))
	if !bytes.Equal(got, data) {
		t.Errorf("GetCopy() = %x, want %x", got, data)
	}
}

func TestMemorySet32(t *testing.T) {
	mem := NewMemory()
	mem.Resize(64)

	val := uint256.NewInt(0xff)
	mem.Set32(0, val)

	got := mem.GetCopy(0, 32)
	want := make([]byte, 32)
	want[31] = 0xff
	if !bytes.Equal(got, want) {
		t.Errorf("Set32 result = %x, want %x", got, want)
	}
}

func TestMemoryGetPtrIsAView(t *testing.T) {
	mem := NewMemory()
	mem.Resize(32)

	data := []byte{1, 2, 3, 4}
	mem.Set(0, 4, data)

	ptr := mem.GetPtr(0, 4)
	ptr[0] = 0xff
	if mem.Data()[0] != 0xff {
		t.Error("GetPtr should return a direct view into the underlying store")
	}
}

func TestMemoryZeroSizeReadsReturnNil(t *testing.T) {
	mem := NewMemory()
	mem.Resize(32)

	if got := mem.GetCopy(0, 0); got != nil {
		t.Errorf("GetCopy(0, 0) = %v, want nil", got)
	}
	if got := mem.GetPtr(0, 0); got != nil {
		t.Errorf("GetPtr(0, 0) = %v, want nil", got)
	}
}

func TestMemoryCopyOverlapping(t *testing.T) {
	mem := NewMemory()
	mem.Resize(32)
	mem.Set(0, 4, []byte{1, 2, 3, 4})

	mem.Copy(2, 0, 4)
	got := mem.GetCopy(2, 4)
	want := []byte{1, 2, 3, 4}
	if !bytes.Equal(got, want) {
		t.Errorf("Copy overlapping forward = %x, want %x", got, want)
	}
}

func TestMemoryGasCostQuadraticGrowth(t *testing.T) {
	small := NewMemory()
	smallCost, err := memoryGasCost(small, 1024)
	if err != nil {
		t.Fatalf("memoryGasCost(0, 1024): %v", err)
	}
	large := NewMemory()
	largeCost, err := memoryGasCost(large, 32768)
	if err != nil {
		t.Fatalf("memoryGasCost(0, 32768): %v", err)
	}
	ratio := float64(largeCost) / float64(smallCost)
	if ratio <= 32.0 {
		t.Errorf("large/small cost ratio = %f, want > 32 (quadratic growth)", ratio)
	}
}

func TestMemoryGasCostNoExpansion(t *testing.T) {
	mem := NewMemory()
	mem.Resize(64)
	if _, err := memoryGasCost(mem, 64); err != nil {
		t.Fatalf("memoryGasCost: %v", err)
	}
	cost, err := memoryGasCost(mem, 32)
	if err != nil {
		t.Fatalf("memoryGasCost(32): %v", err)
	}
	if cost != 0 {
		t.Errorf("memoryGasCost to a smaller size = %d, want 0", cost)
	}
}

func TestMemoryGasCostOverflow(t *testing.T) {
	mem := NewMemory()
	if _, err := memoryGasCost(mem, 0x1FFFFFFFE0+1); err != ErrGasUintOverflow {
		t.Errorf("memoryGasCost near the size ceiling: err = %v, want ErrGasUintOverflow", err)
	}
}
