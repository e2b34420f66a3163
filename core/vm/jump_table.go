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

	"github.com/evmforge/evmcore/params"
)

type (
	executionFunc func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error)
	gasFunc       func(*EVM, *Contract, *Stack, *Memory, uint64) (uint64, error)
	// memorySizeFunc returns the required memory size, in bytes, for a
	// given instruction's operands.
	memorySizeFunc func(*Stack) (size uint64, overflow bool)
)

// operation is a jump-table entry: everything needed to validate the
// stack shape, meter gas, and execute one opcode.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc

	// minStack/maxStack are the bounds the interpreter checks before
	// dispatch: stack underflow/overflow both halt execution.
	minStack int
	maxStack int

	memorySize memorySizeFunc

	// undefined marks opcodes with no defined behavior for this table:
	// INVALID and any byte not assigned by the active hardfork.
	undefined bool
}

func minStack(pops, push int) int {
	return pops
}

func maxStack(pops, push int) int {
	return int(params.StackLimit) + pops - push
}

// JumpTable maps every possible opcode byte to its operation, one slot
// per hardfork generation: EIP activation is additive.
type JumpTable [256]*operation

// Validate checks that every non-nil entry has a correctly shaped stack
// window, a debugging aid used by tests rather than the hot path.
func (jt *JumpTable) Validate() error {
	for i, op := range jt {
		if op == nil {
			continue
		}
		if op.execute == nil {
			return fmt.Errorf("op 0x%x: missing execute function", i)
		}
	}
	return nil
}

func copyJumpTable(source *JumpTable) *JumpTable {
	dest := *source
	for i, op := range source {
		if op != nil {
			opCopy := *op
			dest[i] = &opCopy
		}
	}
	return &dest
}

// newFrontierInstructionSet is the baseline table every later fork's
// table is derived from by copy-then-patch: hardforks are additive
// deltas on one shared jump table shape.
func newFrontierInstructionSet() *JumpTable {
	tbl := &JumpTable{}
	for i := 0; i < 256; i++ {
		tbl[i] = &operation{execute: opUndefined, undefined: true, maxStack: maxStack(0, 0)}
	}
	set := map[OpCode]*operation{
		STOP: {execute: opStop, constantGas: 0, minStack: minStack(0, 0), maxStack: maxStack(0, 0)},

		ADD: arith(opAdd, Gas3), MUL: arith(opMul, Gas5), SUB: arith(opSub, Gas3),
		DIV: arith(opDiv, Gas5), SDIV: arith(opSdiv, Gas5), MOD: arith(opMod, Gas5),
		SMOD: arith(opSmod, Gas5), EXP: {execute: opExp, dynamicGas: gasExp, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SIGNEXTEND: arith(opSignExtend, Gas5),

		ADDMOD: {execute: opAddmod, constantGas: Gas8, minStack: minStack(3, 1), maxStack: maxStack(3, 1)},
		MULMOD: {execute: opMulmod, constantGas: Gas8, minStack: minStack(3, 1), maxStack: maxStack(3, 1)},

		LT: arith(opLt, Gas3), GT: arith(opGt, Gas3), SLT: arith(opSlt, Gas3), SGT: arith(opSgt, Gas3),
		EQ: arith(opEq, Gas3), ISZERO: unary(opIszero, Gas3),
		AND: arith(opAnd, Gas3), OR: arith(opOr, Gas3), XOR: arith(opXor, Gas3), NOT: unary(opNot, Gas3),
		BYTE: arith(opByte, Gas3), SHL: arith(opSHL, Gas3), SHR: arith(opSHR, Gas3), SAR: arith(opSAR, Gas3),

		KECCAK256: {execute: opKeccak256, constantGas: params.GasFastestStep * 10, dynamicGas: gasKeccak256, minStack: minStack(2, 1), maxStack: maxStack(2, 1), memorySize: memoryKeccak256},

		ADDRESS:   nullary(opAddress, Gas2),
		BALANCE:   {execute: opBalance, constantGas: Gas20 * 10, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		ORIGIN:    nullary(opOrigin, Gas2),
		CALLER:    nullary(opCaller, Gas2),
		CALLVALUE: nullary(opCallValue, Gas2),
		CALLDATALOAD: unary(opCallDataLoad, Gas3),
		CALLDATASIZE: nullary(opCallDataSize, Gas2),
		CALLDATACOPY: {execute: opCallDataCopy, constantGas: Gas3, dynamicGas: gasCallDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCallDataCopy},
		CODESIZE:  nullary(opCodeSize, Gas2),
		CODECOPY:  {execute: opCodeCopy, constantGas: Gas3, dynamicGas: gasCodeCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCodeCopy},
		GASPRICE:  nullary(opGasprice, Gas2),

		EXTCODESIZE: {execute: opExtCodeSize, constantGas: Gas20 * 10, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		EXTCODECOPY: {execute: opExtCodeCopy, constantGas: Gas20 * 10, dynamicGas: gasExtCodeCopy, minStack: minStack(4, 0), maxStack: maxStack(4, 0), memorySize: memoryExtCodeCopy},

		BLOCKHASH: unary(opBlockhash, Gas20),
		COINBASE:  nullary(opCoinbase, Gas2),
		TIMESTAMP: nullary(opTimestamp, Gas2),
		NUMBER:    nullary(opNumber, Gas2),
		DIFFICULTY: nullary(opDifficulty, Gas2),
		GASLIMIT:  nullary(opGasLimit, Gas2),

		POP:    {execute: opPop, constantGas: Gas2, minStack: minStack(1, 0), maxStack: maxStack(1, 0)},
		MLOAD:  {execute: opMload, constantGas: Gas3, dynamicGas: gasMLoad, minStack: minStack(1, 1), maxStack: maxStack(1, 1), memorySize: memoryMLoad},
		MSTORE: {execute: opMstore, constantGas: Gas3, dynamicGas: gasMStore, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMStore},
		MSTORE8: {execute: opMstore8, constantGas: Gas3, dynamicGas: gasMStore8, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMStore8},
		SLOAD:  {execute: opSload, constantGas: Gas50 * 10, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		SSTORE: {execute: opSstore, dynamicGas: gasSStoreLegacy, minStack: minStack(2, 0), maxStack: maxStack(2, 0)},
		JUMP:   {execute: opJump, constantGas: Gas8, minStack: minStack(1, 0), maxStack: maxStack(1, 0)},
		JUMPI:  {execute: opJumpi, constantGas: Gas10, minStack: minStack(2, 0), maxStack: maxStack(2, 0)},
		PC:     nullary(opPc, Gas2),
		MSIZE:  nullary(opMsize, Gas2),
		GAS:    nullary(opGas, Gas2),
		JUMPDEST: {execute: opJumpdest, constantGas: Gas1, minStack: minStack(0, 0), maxStack: maxStack(0, 0)},

		CREATE: {execute: opCreate, constantGas: params.CreateGas, dynamicGas: gasCreate, minStack: minStack(3, 1), maxStack: maxStack(3, 1), memorySize: memoryCreate},
		CALL:   {execute: opCall, constantGas: Gas2000 * 5, dynamicGas: gasCallLegacy, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall},
		CALLCODE: {execute: opCallCode, constantGas: Gas2000 * 5, dynamicGas: gasCallCodeLegacy, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall},
		RETURN: {execute: opReturn, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryReturn},
		INVALID: {execute: opUndefined, undefined: true, maxStack: maxStack(0, 0)},
		SELFDESTRUCT: {execute: opSelfdestructLegacy, dynamicGas: gasSelfdestructLegacy, minStack: minStack(1, 0), maxStack: maxStack(1, 0)},
	}
	for op, entry := range set {
		tbl[op] = entry
	}
	for op := PUSH1; op <= PUSH32; op++ {
		tbl[op] = &operation{execute: makePush(uint64(op - PUSH1 + 1)), constantGas: Gas3, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	}
	for op := DUP1; op <= DUP16; op++ {
		n := int(op-DUP1) + 1
		tbl[op] = &operation{execute: makeDup(n), constantGas: Gas3, minStack: minStack(n, n+1), maxStack: maxStack(n, n+1)}
	}
	for op := SWAP1; op <= SWAP16; op++ {
		n := int(op-SWAP1) + 1
		tbl[op] = &operation{execute: makeSwap(n), constantGas: Gas3, minStack: minStack(n+1, n+1), maxStack: maxStack(n+1, n+1)}
	}
	for op := LOG0; op <= LOG4; op++ {
		n := int(op - LOG0)
		tbl[op] = &operation{execute: makeLog(n), dynamicGas: makeGasLog(n), minStack: minStack(n+2, 0), maxStack: maxStack(n+2, 0), memorySize: memoryLog}
	}
	return tbl
}

func arith(fn executionFunc, gas uint64) *operation {
	return &operation{execute: fn, constantGas: gas, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
}

func unary(fn executionFunc, gas uint64) *operation {
	return &operation{execute: fn, constantGas: gas, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
}

func nullary(fn executionFunc, gas uint64) *operation {
	return &operation{execute: fn, constantGas: gas, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
}

func newHomesteadInstructionSet() *JumpTable {
	tbl := newFrontierInstructionSet()
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: Gas2000 * 5, dynamicGas: gasDelegateCallLegacy, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryDelegateCall}
	return tbl
}

func newTangerineWhistleInstructionSet() *JumpTable {
	tbl := newHomesteadInstructionSet()
	tbl[BALANCE].constantGas = params.SloadGasEIP150 * 2
	tbl[EXTCODESIZE].constantGas = params.SloadGasEIP150 * 2
	tbl[EXTCODECOPY].constantGas = params.SloadGasEIP150 * 2
	tbl[SLOAD].constantGas = params.SloadGasEIP150
	tbl[CALL].constantGas = params.CallGasEIP150
	tbl[CALLCODE].constantGas = params.CallGasEIP150
	tbl[DELEGATECALL].constantGas = params.CallGasEIP150
	tbl[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP150
	return tbl
}

func newSpuriousDragonInstructionSet() *JumpTable {
	return newTangerineWhistleInstructionSet()
}

func newByzantiumInstructionSet() *JumpTable {
	tbl := newSpuriousDragonInstructionSet()
	tbl[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.CallGasEIP150, dynamicGas: gasStaticCallLegacy, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryStaticCall}
	tbl[REVERT] = &operation{execute: opRevert, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryReturn}
	tbl[RETURNDATASIZE] = nullary(opReturnDataSize, Gas2)
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: Gas3, dynamicGas: gasReturnDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryReturnDataCopy}
	return tbl
}

func newConstantinopleInstructionSet() *JumpTable {
	tbl := newByzantiumInstructionSet()
	tbl[SHL] = arith(opSHL, Gas3)
	tbl[SHR] = arith(opSHR, Gas3)
	tbl[SAR] = arith(opSAR, Gas3)
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: params.SloadGasEIP150 * 2, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2, minStack: minStack(4, 1), maxStack: maxStack(4, 1), memorySize: memoryCreate2}
	if err := EnableEIP(1283, tbl); err != nil {
		panic(err)
	}
	return tbl
}

func newPetersburgInstructionSet() *JumpTable {
	tbl := newByzantiumInstructionSet()
	tbl[SHL] = arith(opSHL, Gas3)
	tbl[SHR] = arith(opSHR, Gas3)
	tbl[SAR] = arith(opSAR, Gas3)
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: params.SloadGasEIP150 * 2, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2, minStack: minStack(4, 1), maxStack: maxStack(4, 1), memorySize: memoryCreate2}
	return tbl
}

func newIstanbulInstructionSet() *JumpTable {
	tbl := newPetersburgInstructionSet()
	for _, eip := range []int{1884, 1344, 2200} {
		if err := EnableEIP(eip, tbl); err != nil {
			panic(err)
		}
	}
	return tbl
}

func newBerlinInstructionSet() *JumpTable {
	tbl := newIstanbulInstructionSet()
	if err := EnableEIP(2929, tbl); err != nil {
		panic(err)
	}
	return tbl
}

func newLondonInstructionSet() *JumpTable {
	tbl := newBerlinInstructionSet()
	for _, eip := range []int{3529, 3198} {
		if err := EnableEIP(eip, tbl); err != nil {
			panic(err)
		}
	}
	return tbl
}

func newShanghaiInstructionSet() *JumpTable {
	tbl := newLondonInstructionSet()
	for _, eip := range []int{3855, 3860} {
		if err := EnableEIP(eip, tbl); err != nil {
			panic(err)
		}
	}
	return tbl
}

func newCancunInstructionSet() *JumpTable {
	tbl := newShanghaiInstructionSet()
	for _, eip := range []int{1153, 5656, 4844, 7516, 6780} {
		if err := EnableEIP(eip, tbl); err != nil {
			panic(err)
		}
	}
	return tbl
}

// newInstructionSet builds the jump table matching the given Rules, then
// applies any ExtraEIPs on top: hardfork activation is orthogonal and
// additive.
func newInstructionSet(rules params.Rules) *JumpTable {
	var tbl *JumpTable
	switch {
	case rules.IsCancun:
		tbl = newCancunInstructionSet()
	case rules.IsShanghai:
		tbl = newShanghaiInstructionSet()
	case rules.IsLondon:
		tbl = newLondonInstructionSet()
	case rules.IsBerlin:
		tbl = newBerlinInstructionSet()
	case rules.IsIstanbul:
		tbl = newIstanbulInstructionSet()
	case rules.IsPetersburg:
		tbl = newPetersburgInstructionSet()
	case rules.IsConstantinople:
		tbl = newConstantinopleInstructionSet()
	case rules.IsByzantium:
		tbl = newByzantiumInstructionSet()
	case rules.IsEIP158:
		tbl = newSpuriousDragonInstructionSet()
	case rules.IsEIP150:
		tbl = newTangerineWhistleInstructionSet()
	case rules.IsHomestead:
		tbl = newHomesteadInstructionSet()
	default:
		tbl = newFrontierInstructionSet()
	}
	for _, eip := range rules.ExtraEIPs {
		if err := EnableEIP(eip, tbl); err != nil {
			panic(err)
		}
	}
	return tbl
}
