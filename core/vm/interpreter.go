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
	"fmt"
	"sync/atomic"
)

// ScopeContext groups the three pieces of state scoped to a single call
// frame: the Word stack, the byte memory, and the Contract being run.
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

// StepEvent is emitted once per opcode dispatch, the tracing hook for
// external observers (a debugger, a fuzzer harness). It is a snapshot
// taken before the opcode runs: Gas is the balance before this
// opcode's fee is charged, and Cost is that opcode's known constant
// fee (0 if the opcode turns out to be undefined).
type StepEvent struct {
	PC    uint64
	Op    OpCode
	Gas   uint64
	Cost  uint64
	Depth int
}

// EVMInterpreter is the fetch-decode-execute loop: it walks
// Contract.Code one opcode at a time, dispatching through a JumpTable
// selected once per (block, time) pair, until a STOP/RETURN/REVERT/error
// transitions the run out of RUNNING.
type EVMInterpreter struct {
	evm   *EVM
	table *JumpTable

	readOnly   bool
	returnData []byte

	// OnStep, if set, is invoked before each opcode dispatch, ahead of
	// the stack-bounds check and fee charge, with a pre-execution
	// snapshot. Used by cmd/evm's tracer; nil in the hot path costs one
	// nil check. An error return aborts the run as a fatal,
	// non-catchable trap.
	OnStep func(StepEvent) error
}

func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	return &EVMInterpreter{
		evm:   evm,
		table: newInstructionSet(evm.chainRules),
	}
}

// Run executes contract.Code against input, returning the bytes passed
// to RETURN (or REVERT's reason). readOnly propagates the STATICCALL
// restriction into this frame and all its children.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}
	in.returnData = nil

	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op          OpCode
		mem         = NewMemory()
		stack       = newstack()
		pc          = uint64(0)
		cost        uint64
		scope       = &ScopeContext{Memory: mem, Stack: stack, Contract: contract}
	)
	contract.Input = input
	defer returnStack(stack)

	for {
		if atomic.LoadInt32(&in.evm.abort) != 0 {
			break
		}
		op = OpCode(contract.Code[pc])
		operation := in.table[op]

		if in.OnStep != nil {
			var stepCost uint64
			if operation != nil {
				stepCost = operation.constantGas
			}
			if stepErr := in.OnStep(StepEvent{PC: pc, Op: op, Gas: contract.Gas, Cost: stepCost, Depth: in.evm.depth}); stepErr != nil {
				return nil, stepErr
			}
		}

		if operation == nil || operation.undefined {
			return nil, fmt.Errorf("invalid opcode 0x%x", byte(op))
		}
		if sLen := stack.len(); sLen < operation.minStack {
			return nil, &StackUnderflowError{stackLen: sLen, required: operation.minStack}
		} else if sLen > operation.maxStack {
			return nil, &StackOverflowError{stackLen: sLen, limit: operation.maxStack}
		}

		cost = operation.constantGas
		if !contract.UseGas(cost) {
			return nil, ErrOutOfGas
		}

		var memorySize uint64
		if operation.memorySize != nil {
			memSize, overflow := operation.memorySize(stack)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			if memorySize, overflow = toSizeOverflow(memSize); overflow {
				return nil, ErrGasUintOverflow
			}
		}
		if operation.dynamicGas != nil {
			dynCost, err := operation.dynamicGas(in.evm, contract, stack, mem, memorySize)
			if err != nil {
				return nil, err
			}
			cost += dynCost
			if !contract.UseGas(dynCost) {
				return nil, ErrOutOfGas
			}
		}
		if memorySize > 0 {
			mem.Resize(memorySize)
		}

		res, err := operation.execute(&pc, in, scope)
		if err != nil {
			if err == errStopToken {
				err = nil
			}
			return res, err
		}
		pc++
	}
	return nil, nil
}

func toSizeOverflow(size uint64) (uint64, bool) {
	if size > 0x1FFFFFFFE0 {
		return 0, true
	}
	words := toWordSize(size)
	total := words * 32
	return total, false
}
