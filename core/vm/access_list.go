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
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/evmforge/evmcore/common"
)

// slotKey identifies one (address, storage slot) pair in the warm set.
type slotKey struct {
	addr common.Address
	slot common.Hash
}

// AccessList tracks the warm/cold address and storage-slot sets of
// EIP-2929/2930: any address or slot touched once during a transaction
// stays warm (cheap) for the remainder of it.
type AccessList struct {
	addresses mapset.Set[common.Address]
	slots     mapset.Set[slotKey]
}

// NewAccessList returns an AccessList with the given addresses (the
// precompiles, per EIP-2929) pre-warmed. The transaction's sender and
// destination are not added here.
func NewAccessList(precompiles ...common.Address) *AccessList {
	al := &AccessList{
		addresses: mapset.NewThreadUnsafeSet[common.Address](),
		slots:     mapset.NewThreadUnsafeSet[slotKey](),
	}
	for _, p := range precompiles {
		al.addresses.Add(p)
	}
	return al
}

// AddressWarm reports whether addr has already been accessed.
func (al *AccessList) AddressWarm(addr common.Address) bool {
	return al.addresses.Contains(addr)
}

// AddAddress marks addr as warm, returning true if it was cold before.
func (al *AccessList) AddAddress(addr common.Address) bool {
	return al.addresses.Add(addr)
}

// SlotWarm reports whether (addr, slot) has already been accessed.
func (al *AccessList) SlotWarm(addr common.Address, slot common.Hash) bool {
	if !al.addresses.Contains(addr) {
		return false
	}
	return al.slots.Contains(slotKey{addr, slot})
}

// AddSlot marks (addr, slot) as warm, implicitly warming addr too.
func (al *AccessList) AddSlot(addr common.Address, slot common.Hash) {
	al.addresses.Add(addr)
	al.slots.Add(slotKey{addr, slot})
}
