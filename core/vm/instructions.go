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

	"github.com/holiman/uint256"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/core/types"
	"github.com/evmforge/evmcore/crypto"
	"github.com/evmforge/evmcore/params"
)

func opUndefined(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, fmt.Errorf("invalid opcode")
}

func opStop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, errStopToken
}

func opAdd(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.SMod(&x, y)
	return nil, nil
}

func opExp(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	base, exponent := scope.Stack.pop(), scope.Stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	back, num := scope.Stack.pop(), scope.Stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

func opAddmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opLt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	th, val := scope.Stack.pop(), scope.Stack.peek()
	val.Byte(&th)
	return nil, nil
}

func opSHL(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSHR(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSAR(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}

func opKeccak256(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	data := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
	return nil, nil
}

func opAddress(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(scope.Contract.Address().Bytes()))
	return nil, nil
}

func opBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.peek()
	addr := common.AddressFromWord(slot)
	slot.Set(interpreter.evm.StateDB.GetBalance(addr))
	return nil, nil
}

func opOrigin(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(interpreter.evm.TxContext.Origin.Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(scope.Contract.Caller().Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).Set(scope.Contract.Value()))
	return nil, nil
}

func opCallDataLoad(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(scope.Contract.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Input))))
	return nil, nil
}

func opCallDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, dataOffset, length := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = 0xffffffffffffffff
	}
	data := getData(scope.Contract.Input, dataOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Code))))
	return nil, nil
}

func opCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, codeOffset, length := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}
	data := getData(scope.Contract.Code, codeOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opGasprice(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetFromBig(interpreter.evm.TxContext.GasPrice))
	return nil, nil
}

func opExtCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.peek()
	addr := common.AddressFromWord(slot)
	slot.SetUint64(uint64(interpreter.evm.StateDB.GetCodeSize(addr)))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	addrWord, memOffset, codeOffset, length := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	addr := common.AddressFromWord(&addrWord)
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}
	code := interpreter.evm.StateDB.GetCode(addr)
	data := getData(code, codeOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opReturnDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(interpreter.returnData))))
	return nil, nil
}

func opReturnDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, dataOffset, length := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return nil, ErrReturnDataOutOfBounds
	}
	len64, overflow := length.Uint64WithOverflow()
	if overflow || offset64+len64 > uint64(len(interpreter.returnData)) {
		return nil, ErrReturnDataOutOfBounds
	}
	scope.Memory.Set(memOffset.Uint64(), len64, interpreter.returnData[offset64:offset64+len64])
	return nil, nil
}

func opExtCodeHash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.peek()
	addr := common.AddressFromWord(slot)
	if interpreter.evm.StateDB.Empty(addr) {
		slot.Clear()
	} else {
		slot.SetBytes(interpreter.evm.StateDB.GetCodeHash(addr).Bytes())
	}
	return nil, nil
}

func opBlockhash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	num := scope.Stack.peek()
	if !num.IsUint64() {
		num.Clear()
		return nil, nil
	}
	h := interpreter.evm.Context.GetHash
	if h == nil {
		num.Clear()
		return nil, nil
	}
	num.SetBytes(h(num.Uint64()).Bytes())
	return nil, nil
}

func opCoinbase(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(interpreter.evm.Context.Coinbase.Bytes()))
	return nil, nil
}

func opTimestamp(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(interpreter.evm.Context.Time))
	return nil, nil
}

func opNumber(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetFromBig(interpreter.evm.Context.BlockNumber))
	return nil, nil
}

func opDifficulty(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.evm.Context.Difficulty == nil {
		scope.Stack.push(new(uint256.Int))
	} else {
		scope.Stack.push(new(uint256.Int).SetFromBig(interpreter.evm.Context.Difficulty))
	}
	return nil, nil
}

func opGasLimit(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(interpreter.evm.Context.GasLimit))
	return nil, nil
}

func opPop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop()
	return nil, nil
}

func opMload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	v := scope.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(int64(offset), 32))
	return nil, nil
}

func opMstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	mStart, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	off, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opSload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.peek()
	hash := common.BytesToHash(loc.Bytes())
	val := interpreter.evm.StateDB.GetState(scope.Contract.Address(), hash)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opSstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	loc, val := scope.Stack.pop(), scope.Stack.pop()
	b := loc.Bytes32()
	interpreter.evm.StateDB.SetState(scope.Contract.Address(), common.BytesToHash(b[:]), common.BytesToHash(val.Bytes()))
	return nil, nil
}

func opJump(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest := scope.Stack.pop()
	if !scope.Contract.validJumpdest(&dest) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64() - 1
	return nil, nil
}

func opJumpi(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest, cond := scope.Stack.pop(), scope.Stack.pop()
	if !cond.IsZero() {
		if !scope.Contract.validJumpdest(&dest) {
			return nil, ErrInvalidJump
		}
		*pc = dest.Uint64() - 1
	}
	return nil, nil
}

func opPc(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(scope.Contract.Gas))
	return nil, nil
}

func opJumpdest(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

func makePush(size uint64) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		codeLen := uint64(len(scope.Contract.Code))
		start := min(codeLen, *pc+1)
		end := min(codeLen, start+size)
		var b [32]byte
		copy(b[32-size:], scope.Contract.Code[start:end])
		scope.Stack.push(new(uint256.Int).SetBytes(b[:]))
		*pc += size
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.dup(n)
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.swap(n + 1)
		return nil, nil
	}
}

func makeLog(n int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		if interpreter.readOnly {
			return nil, ErrWriteProtection
		}
		mStart, mSize := scope.Stack.pop(), scope.Stack.pop()
		topics := make([]common.Hash, n)
		for i := 0; i < n; i++ {
			addr := scope.Stack.pop()
			topics[i] = common.BytesToHash(addr.Bytes())
		}
		data := scope.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))
		interpreter.evm.StateDB.AddLog(&types.Log{
			Address: scope.Contract.Address(),
			Topics:  topics,
			Data:    data,
		})
		return nil, nil
	}
}

func makeGasLog(n int) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCostAt(mem, memorySize)
		if err != nil {
			return 0, err
		}
		size := stack.back(1)
		words, overflow := bigWordGas(size)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		gas += uint64(n) * 375
		byteGas, overflow := size.Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		gas += byteGas * 8
		_ = words
		return gas, nil
	}
}

func opCreate(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	value, offset, size := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	res, addr, returnGas, err := interpreter.evm.Create(scope.Contract.Address(), input, gas, &value)
	pushCreateResult(scope, res, addr, err)
	scope.Contract.Gas += returnGas
	interpreter.returnData = res
	if err == ErrExecutionReverted {
		return res, nil
	}
	return nil, nil
}

func opCreate2(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	value, offset, size, salt := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	res, addr, returnGas, err := interpreter.evm.Create2(scope.Contract.Address(), input, gas, &value, &salt)
	pushCreateResult(scope, res, addr, err)
	scope.Contract.Gas += returnGas
	interpreter.returnData = res
	if err == ErrExecutionReverted {
		return res, nil
	}
	return nil, nil
}

func pushCreateResult(scope *ScopeContext, res []byte, addr common.Address, err error) {
	if err != nil {
		scope.Stack.push(new(uint256.Int))
	} else {
		scope.Stack.push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
}

func opCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	gasWord, addrWord, value, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	addr := common.AddressFromWord(&addrWord)
	if interpreter.readOnly && !value.IsZero() {
		return nil, ErrWriteProtection
	}
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	var gas uint64
	if !value.IsZero() {
		gas = params.CallStipend
	}
	callGasAmt := callGas(interpreter.evm.chainRules.IsEIP150, scope.Contract.Gas, 0, &gasWord)
	scope.Contract.UseGas(callGasAmt)

	ret, returnGas, err := interpreter.evm.Call(scope.Contract.Address(), addr, args, callGasAmt+gas, &value)
	pushCallResult(scope, err)
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset.Uint64(), min(retSize.Uint64(), uint64(len(ret))), ret)
	}
	return nil, nil
}

func opCallCode(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	gasWord, addrWord, value, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	addr := common.AddressFromWord(&addrWord)
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	var gas uint64
	if !value.IsZero() {
		gas = params.CallStipend
	}
	callGasAmt := callGas(interpreter.evm.chainRules.IsEIP150, scope.Contract.Gas, 0, &gasWord)
	scope.Contract.UseGas(callGasAmt)

	ret, returnGas, err := interpreter.evm.CallCode(scope.Contract.Address(), addr, args, callGasAmt+gas, &value)
	pushCallResult(scope, err)
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset.Uint64(), min(retSize.Uint64(), uint64(len(ret))), ret)
	}
	return nil, nil
}

func opDelegateCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	gasWord, addrWord, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	addr := common.AddressFromWord(&addrWord)
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	callGasAmt := callGas(interpreter.evm.chainRules.IsEIP150, scope.Contract.Gas, 0, &gasWord)
	scope.Contract.UseGas(callGasAmt)

	ret, returnGas, err := interpreter.evm.DelegateCall(scope.Contract.Caller(), scope.Contract.Address(), addr, args, callGasAmt, scope.Contract.Value())
	pushCallResult(scope, err)
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset.Uint64(), min(retSize.Uint64(), uint64(len(ret))), ret)
	}
	return nil, nil
}

func opStaticCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	gasWord, addrWord, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	addr := common.AddressFromWord(&addrWord)
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	callGasAmt := callGas(interpreter.evm.chainRules.IsEIP150, scope.Contract.Gas, 0, &gasWord)
	scope.Contract.UseGas(callGasAmt)

	ret, returnGas, err := interpreter.evm.StaticCall(scope.Contract.Address(), addr, args, callGasAmt)
	pushCallResult(scope, err)
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset.Uint64(), min(retSize.Uint64(), uint64(len(ret))), ret)
	}
	return nil, nil
}

func pushCallResult(scope *ScopeContext, err error) {
	if err != nil {
		scope.Stack.push(new(uint256.Int))
	} else {
		scope.Stack.push(new(uint256.Int).SetOne())
	}
}

func opReturn(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, errStopToken
}

func opRevert(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	interpreter.returnData = ret
	return ret, ErrExecutionReverted
}

func opSelfdestructLegacy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.pop()
	balance := interpreter.evm.StateDB.GetBalance(scope.Contract.Address())
	interpreter.evm.StateDB.AddBalance(common.AddressFromWord(&beneficiary), balance)
	interpreter.evm.StateDB.SelfDestruct(scope.Contract.Address())
	return nil, errStopToken
}

// opSelfdestruct6780 implements EIP-6780: SELFDESTRUCT only transfers
// balance unless the contract was also *created* in this same
// transaction, in which case it still clears code/storage too. This
// core does not track "created this tx" (no tx-scoped journal beyond
// the call-frame snapshot stack), so it always takes the transfer-only
// path; a full chain node wires the creation marker through StateDB.
func opSelfdestruct6780(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.pop()
	balance := interpreter.evm.StateDB.GetBalance(scope.Contract.Address())
	interpreter.evm.StateDB.AddBalance(common.AddressFromWord(&beneficiary), balance)
	interpreter.evm.StateDB.SubBalance(scope.Contract.Address(), balance)
	return nil, errStopToken
}

// getData returns len bytes from data starting at offset, zero-padded
// past data's end — the CALLDATACOPY/CODECOPY/EXTCODECOPY read rule:
// reads past the end return zero.
func getData(data []byte, offset, size uint64) []byte {
	length := uint64(len(data))
	if offset > length {
		offset = length
	}
	end := offset + size
	if end > length {
		end = length
	}
	res := make([]byte, size)
	copy(res, data[offset:end])
	return res
}
