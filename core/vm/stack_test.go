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

func TestStackPushPop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	if st.len() != 0 {
		t.Fatalf("new stack len = %d, want 0", st.len())
	}
	one := uint256.NewInt(1)
	st.push(one)
	if st.len() != 1 {
		t.Fatalf("after push, len = %d, want 1", st.len())
	}
	got := st.pop()
	if got.Cmp(one) != 0 {
		t.Errorf("pop() = %s, want %s", got.Hex(), one.Hex())
	}
	if st.len() != 0 {
		t.Fatalf("after pop, len = %d, want 0", st.len())
	}
}

func TestStackPeekAndBack(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(10))
	st.push(uint256.NewInt(20))
	st.push(uint256.NewInt(30))

	if st.peek().Uint64() != 30 {
		t.Errorf("peek() = %d, want 30", st.peek().Uint64())
	}
	if st.back(0).Uint64() != 30 {
		t.Errorf("back(0) = %d, want 30", st.back(0).Uint64())
	}
	if st.back(1).Uint64() != 20 {
		t.Errorf("back(1) = %d, want 20", st.back(1).Uint64())
	}
	if st.back(2).Uint64() != 10 {
		t.Errorf("back(2) = %d, want 10", st.back(2).Uint64())
	}
}

func TestStackSwap(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.swap(2)
	if st.back(0).Uint64() != 1 || st.back(1).Uint64() != 2 {
		t.Errorf("after swap(2): back(0)=%d back(1)=%d, want 1,2", st.back(0).Uint64(), st.back(1).Uint64())
	}
}

func TestStackDup(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(7))
	st.dup(1)
	if st.len() != 2 {
		t.Fatalf("after dup(1), len = %d, want 2", st.len())
	}
	if st.back(0).Uint64() != 7 || st.back(1).Uint64() != 7 {
		t.Errorf("dup(1) did not duplicate the top value")
	}
}

func TestStackData(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	data := st.Data()
	if len(data) != 2 {
		t.Fatalf("Data() len = %d, want 2", len(data))
	}
}
