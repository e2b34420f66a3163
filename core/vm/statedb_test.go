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

	"github.com/evmforge/evmcore/common"
	"github.com/holiman/uint256"
)

func TestMemoryStateDBBalance(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})

	db.AddBalance(addr, uint256.NewInt(100))
	if got := db.GetBalance(addr); got.Uint64() != 100 {
		t.Fatalf("GetBalance = %d, want 100", got.Uint64())
	}
	db.SubBalance(addr, uint256.NewInt(40))
	if got := db.GetBalance(addr); got.Uint64() != 60 {
		t.Fatalf("GetBalance after sub = %d, want 60", got.Uint64())
	}
}

func TestMemoryStateDBSnapshotRevert(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})
	key := common.BytesToHash([]byte{2})

	db.SetState(addr, key, common.BytesToHash([]byte{0xaa}))
	snap := db.Snapshot()
	db.SetState(addr, key, common.BytesToHash([]byte{0xbb}))
	db.AddBalance(addr, uint256.NewInt(500))

	db.RevertToSnapshot(snap)

	if got := db.GetState(addr, key); got != common.BytesToHash([]byte{0xaa}) {
		t.Errorf("GetState after revert = %x, want %x", got, common.BytesToHash([]byte{0xaa}))
	}
	if got := db.GetBalance(addr); !got.IsZero() {
		t.Errorf("GetBalance after revert = %d, want 0", got.Uint64())
	}
}

func TestMemoryStateDBNestedSnapshots(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})

	db.SetNonce(addr, 1)
	outer := db.Snapshot()
	db.SetNonce(addr, 2)
	inner := db.Snapshot()
	db.SetNonce(addr, 3)

	db.RevertToSnapshot(inner)
	if db.GetNonce(addr) != 2 {
		t.Fatalf("nonce after inner revert = %d, want 2", db.GetNonce(addr))
	}
	db.RevertToSnapshot(outer)
	if db.GetNonce(addr) != 1 {
		t.Fatalf("nonce after outer revert = %d, want 1", db.GetNonce(addr))
	}
}

func TestMemoryStateDBCommittedStateIsPreSSTOREValue(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})
	key := common.BytesToHash([]byte{2})

	db.SetState(addr, key, common.BytesToHash([]byte{0x01}))
	if got := db.GetCommittedState(addr, key); got != (common.Hash{}) {
		t.Errorf("first SetState should leave committed state at the pre-existing (zero) value, got %x", got)
	}
	db.SetState(addr, key, common.BytesToHash([]byte{0x02}))
	if got := db.GetCommittedState(addr, key); got != (common.Hash{}) {
		t.Errorf("second SetState in the same call should not move the committed baseline, got %x", got)
	}
}

func TestMemoryStateDBTransientStateRoundTrip(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})
	key := common.BytesToHash([]byte{2})

	db.SetTransientState(addr, key, common.BytesToHash([]byte{0x7}))
	if got := db.GetTransientState(addr, key); got != common.BytesToHash([]byte{0x7}) {
		t.Errorf("GetTransientState = %x, want 0x7", got)
	}
}

func TestMemoryStateDBSelfDestruct(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})
	db.CreateAccount(addr)

	if db.HasSuicided(addr) {
		t.Fatal("fresh account should not be marked suicided")
	}
	db.SelfDestruct(addr)
	if !db.HasSuicided(addr) {
		t.Error("SelfDestruct should mark the account suicided")
	}
}

func TestMemoryStateDBEmpty(t *testing.T) {
	db := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{1})

	if !db.Empty(addr) {
		t.Error("a never-created account should be Empty")
	}
	db.CreateAccount(addr)
	if !db.Empty(addr) {
		t.Error("a freshly created account with no nonce/balance/code should be Empty")
	}
	db.SetNonce(addr, 1)
	if db.Empty(addr) {
		t.Error("an account with a nonzero nonce should not be Empty")
	}
}

func TestMemoryStateDBAddLog(t *testing.T) {
	db := NewMemoryStateDB()
	snap := db.Snapshot()
	db.AddLog(nil)
	if len(db.Logs()) != 1 {
		t.Fatalf("Logs() len = %d, want 1", len(db.Logs()))
	}
	db.RevertToSnapshot(snap)
	if len(db.Logs()) != 0 {
		t.Errorf("Logs() after revert = %d, want 0", len(db.Logs()))
	}
}
