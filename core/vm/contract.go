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
	"github.com/holiman/uint256"
)

// Contract is the Code + Gas pair that forms the per-call-frame
// execution context: an immutable Code, its validJumps
// set, the caller/value that created this frame, and the mutable Gas
// counter the interpreter bills against.
type Contract struct {
	CallerAddress common.Address
	caller        common.Address
	self          common.Address

	Code     []byte
	CodeHash common.Hash
	Input    []byte

	Gas   uint64
	value *uint256.Int

	jumpdests validJumpSet // lazily computed, cached on the Contract

	IsDelegate bool
}

// NewContract returns a fresh call frame for the given (caller, self,
// value, gas) quadruple.
func NewContract(caller common.Address, self common.Address, value *uint256.Int, gas uint64) *Contract {
	return &Contract{
		CallerAddress: caller,
		caller:        caller,
		self:          self,
		value:         value,
		Gas:           gas,
	}
}

func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow {
		return false
	}
	if udest >= uint64(len(c.Code)) {
		return false
	}
	if c.jumpdests == nil {
		c.jumpdests = computeValidJumps(c.Code)
	}
	return c.jumpdests.Contains(udest) && OpCode(c.Code[udest]) == JUMPDEST
}

// UseGas deducts amount from the remaining gas; any deduction past zero
// traps the call frame with OUT_OF_GAS.
func (c *Contract) UseGas(amount uint64) bool {
	if c.Gas < amount {
		return false
	}
	c.Gas -= amount
	return true
}

func (c *Contract) Address() common.Address { return c.self }

func (c *Contract) Caller() common.Address { return c.caller }

func (c *Contract) Value() *uint256.Int { return c.value }

func (c *Contract) SetCallCode(hash common.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
}

func (c *Contract) SetCodeOptionalHash(addr *common.Address, code []byte, hash common.Hash) {
	c.Code = code
	c.CodeHash = hash
	c.self = *addr
}
