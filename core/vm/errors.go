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

import "errors"

// These are the TRAPPED-state causes: any one of them halts execution
// immediately, discards return data, and forces the enclosing call
// frame to revert state changes. ErrExecutionReverted (REVERT) is the
// exception on return data and gas: the frame's state is still
// reverted, but its return data and unused gas are kept.
var (
	ErrOutOfGas                 = errors.New("out of gas")
	ErrCodeStoreOutOfGas        = errors.New("contract creation code storage out of gas")
	ErrDepth                    = errors.New("max call depth exceeded")
	ErrInsufficientBalance      = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrExecutionReverted        = errors.New("execution reverted")
	ErrMaxCodeSizeExceeded      = errors.New("max code size exceeded")
	ErrMaxInitCodeSizeExceeded  = errors.New("max initcode size exceeded")
	ErrInvalidJump              = errors.New("invalid jump destination")
	ErrWriteProtection          = errors.New("write protection")
	ErrReturnDataOutOfBounds    = errors.New("return data out of bounds")
	ErrGasUintOverflow          = errors.New("gas uint64 overflow")
	ErrInvalidCode              = errors.New("invalid code: must not begin with 0xef")
	ErrNonceUintOverflow        = errors.New("nonce uint64 overflow")
	ErrStackUnderflow           = errors.New("stack underflow")
	ErrStackOverflow            = errors.New("stack overflow")

	errStopToken = errors.New("stop token")
)

// StackUnderflowError is returned by the interpreter's loop when a stack
// operation doesn't have enough items, wrapping the item counts for
// diagnostics.
type StackUnderflowError struct {
	stackLen int
	required int
}

func (e *StackUnderflowError) Error() string {
	return ErrStackUnderflow.Error()
}

// StackOverflowError is returned when a stack operation would push past
// the 1024-item limit.
type StackOverflowError struct {
	stackLen int
	limit    int
}

func (e *StackOverflowError) Error() string {
	return ErrStackOverflow.Error()
}
