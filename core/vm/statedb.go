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
	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/core/types"
	"github.com/holiman/uint256"
)

// StateDB is the EEI's world-state capability surface: balances,
// nonces, code, storage, the refund counter, transient storage
// (EIP-1153), logs, and the checkpoint/revert stack that backs
// CALL/CREATE's all-or-nothing semantics.
type StateDB interface {
	CreateAccount(common.Address)

	GetBalance(common.Address) *uint256.Int
	AddBalance(common.Address, *uint256.Int)
	SubBalance(common.Address, *uint256.Int)

	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)

	GetCodeHash(common.Address) common.Hash
	GetCode(common.Address) []byte
	SetCode(common.Address, []byte)
	GetCodeSize(common.Address) int

	AddRefund(uint64)
	SubRefund(uint64)
	GetRefund() uint64

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)
	GetCommittedState(common.Address, common.Hash) common.Hash

	GetTransientState(common.Address, common.Hash) common.Hash
	SetTransientState(common.Address, common.Hash, common.Hash)

	SelfDestruct(common.Address)
	HasSuicided(common.Address) bool

	Exist(common.Address) bool
	Empty(common.Address) bool

	AddLog(*types.Log)

	Snapshot() int
	RevertToSnapshot(int)
}

type account struct {
	balance   *uint256.Int
	nonce     uint64
	code      []byte
	codeHash  common.Hash
	storage   map[common.Hash]common.Hash
	suicided  bool
}

func newAccount() *account {
	return &account{balance: new(uint256.Int), storage: make(map[common.Hash]common.Hash)}
}

// journalEntry undoes one mutation on RevertToSnapshot.
type journalEntry func(*MemoryStateDB)

// MemoryStateDB is a minimal in-memory StateDB, sufficient to drive the
// runtime harness and tests without a real trie-backed database.
type MemoryStateDB struct {
	accounts  map[common.Address]*account
	committed map[common.Address]map[common.Hash]common.Hash
	transient map[common.Address]map[common.Hash]common.Hash
	refund    uint64
	logs      []*types.Log
	journal   []journalEntry
}

func NewMemoryStateDB() *MemoryStateDB {
	return &MemoryStateDB{
		accounts:  make(map[common.Address]*account),
		committed: make(map[common.Address]map[common.Hash]common.Hash),
		transient: make(map[common.Address]map[common.Hash]common.Hash),
	}
}

func (s *MemoryStateDB) getOrNew(addr common.Address) *account {
	a, ok := s.accounts[addr]
	if !ok {
		a = newAccount()
		s.accounts[addr] = a
	}
	return a
}

func (s *MemoryStateDB) CreateAccount(addr common.Address) {
	prev, existed := s.accounts[addr]
	s.accounts[addr] = newAccount()
	s.journal = append(s.journal, func(m *MemoryStateDB) {
		if existed {
			m.accounts[addr] = prev
		} else {
			delete(m.accounts, addr)
		}
	})
}

func (s *MemoryStateDB) GetBalance(addr common.Address) *uint256.Int {
	if a, ok := s.accounts[addr]; ok {
		return a.balance.Clone()
	}
	return new(uint256.Int)
}

func (s *MemoryStateDB) AddBalance(addr common.Address, amount *uint256.Int) {
	a := s.getOrNew(addr)
	old := a.balance.Clone()
	a.balance = new(uint256.Int).Add(a.balance, amount)
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.getOrNew(addr).balance = old })
}

func (s *MemoryStateDB) SubBalance(addr common.Address, amount *uint256.Int) {
	a := s.getOrNew(addr)
	old := a.balance.Clone()
	a.balance = new(uint256.Int).Sub(a.balance, amount)
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.getOrNew(addr).balance = old })
}

func (s *MemoryStateDB) GetNonce(addr common.Address) uint64 {
	if a, ok := s.accounts[addr]; ok {
		return a.nonce
	}
	return 0
}

func (s *MemoryStateDB) SetNonce(addr common.Address, nonce uint64) {
	a := s.getOrNew(addr)
	old := a.nonce
	a.nonce = nonce
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.getOrNew(addr).nonce = old })
}

func (s *MemoryStateDB) GetCodeHash(addr common.Address) common.Hash {
	if a, ok := s.accounts[addr]; ok {
		return a.codeHash
	}
	return common.Hash{}
}

func (s *MemoryStateDB) GetCode(addr common.Address) []byte {
	if a, ok := s.accounts[addr]; ok {
		return a.code
	}
	return nil
}

func (s *MemoryStateDB) SetCode(addr common.Address, code []byte) {
	a := s.getOrNew(addr)
	oldCode, oldHash := a.code, a.codeHash
	a.code = code
	a.codeHash = common.BytesToHash(code)
	s.journal = append(s.journal, func(m *MemoryStateDB) {
		acc := m.getOrNew(addr)
		acc.code, acc.codeHash = oldCode, oldHash
	})
}

func (s *MemoryStateDB) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

func (s *MemoryStateDB) AddRefund(gas uint64) {
	old := s.refund
	s.refund += gas
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.refund = old })
}

func (s *MemoryStateDB) SubRefund(gas uint64) {
	old := s.refund
	if gas > s.refund {
		s.refund = 0
	} else {
		s.refund -= gas
	}
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.refund = old })
}

func (s *MemoryStateDB) GetRefund() uint64 { return s.refund }

func (s *MemoryStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if a, ok := s.accounts[addr]; ok {
		return a.storage[key]
	}
	return common.Hash{}
}

func (s *MemoryStateDB) SetState(addr common.Address, key, value common.Hash) {
	a := s.getOrNew(addr)
	if _, ok := s.committed[addr]; !ok {
		s.committed[addr] = make(map[common.Hash]common.Hash)
	}
	if _, tracked := s.committed[addr][key]; !tracked {
		s.committed[addr][key] = a.storage[key]
	}
	old := a.storage[key]
	a.storage[key] = value
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.getOrNew(addr).storage[key] = old })
}

func (s *MemoryStateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	if m, ok := s.committed[addr]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return s.GetState(addr, key)
}

func (s *MemoryStateDB) GetTransientState(addr common.Address, key common.Hash) common.Hash {
	if m, ok := s.transient[addr]; ok {
		return m[key]
	}
	return common.Hash{}
}

func (s *MemoryStateDB) SetTransientState(addr common.Address, key, value common.Hash) {
	m, ok := s.transient[addr]
	if !ok {
		m = make(map[common.Hash]common.Hash)
		s.transient[addr] = m
	}
	old := m[key]
	m[key] = value
	s.journal = append(s.journal, func(st *MemoryStateDB) {
		st.transient[addr][key] = old
	})
}

func (s *MemoryStateDB) SelfDestruct(addr common.Address) {
	a := s.getOrNew(addr)
	old := a.suicided
	a.suicided = true
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.getOrNew(addr).suicided = old })
}

func (s *MemoryStateDB) HasSuicided(addr common.Address) bool {
	if a, ok := s.accounts[addr]; ok {
		return a.suicided
	}
	return false
}

func (s *MemoryStateDB) Exist(addr common.Address) bool {
	_, ok := s.accounts[addr]
	return ok
}

func (s *MemoryStateDB) Empty(addr common.Address) bool {
	a, ok := s.accounts[addr]
	if !ok {
		return true
	}
	return a.nonce == 0 && a.balance.IsZero() && len(a.code) == 0
}

func (s *MemoryStateDB) AddLog(log *types.Log) {
	s.logs = append(s.logs, log)
	n := len(s.logs)
	s.journal = append(s.journal, func(m *MemoryStateDB) { m.logs = m.logs[:n-1] })
}

func (s *MemoryStateDB) Logs() []*types.Log { return s.logs }

// Snapshot returns the journal length as a checkpoint id, the state
// checkpoint CALL/CREATE take before running the callee and roll back
// to on revert/trap.
func (s *MemoryStateDB) Snapshot() int {
	return len(s.journal)
}

func (s *MemoryStateDB) RevertToSnapshot(id int) {
	for i := len(s.journal) - 1; i >= id; i-- {
		s.journal[i](s)
	}
	s.journal = s.journal[:id]
}
