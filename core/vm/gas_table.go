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
	"github.com/evmforge/evmcore/params"
	"github.com/holiman/uint256"
)

// memoryGasCostAt is the common prelude every dynamicGas function that
// touches memory shares: bill the Cmem delta. It does not resize memory;
// the interpreter calls Resize after the dynamic gas is paid.
func memoryGasCostAt(mem *Memory, size uint64) (uint64, error) {
	return memoryGasCost(mem, size)
}

func gasExp(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expByteLen := uint64((stack.back(1).BitLen() + 7) / 8)
	var gas, byteGas uint64
	if evm.chainRules.IsEIP158 {
		byteGas = params.ExpByteGasEIP158
	} else {
		byteGas = params.ExpByteGasFrontier
	}
	gas = byteGas * expByteLen
	if gas/byteGas != expByteLen {
		return 0, ErrGasUintOverflow
	}
	gas += params.ExpGas
	return gas, nil
}

func gasKeccak256(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := bigWordGas(stack.back(1))
	if overflow {
		return 0, ErrGasUintOverflow
	}
	wordGas *= params.GasFastestStep
	if gas+wordGas < gas {
		return 0, ErrGasUintOverflow
	}
	return gas + wordGas, nil
}

func bigWordGas(size *uint256.Int) (uint64, bool) {
	if !size.IsUint64() {
		return 0, true
	}
	return toWordSize(size.Uint64()), false
}

func gasCallDataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memCopyGas(mem, memorySize, stack.back(2))
}

func gasCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memCopyGas(mem, memorySize, stack.back(2))
}

func gasReturnDataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memCopyGas(mem, memorySize, stack.back(2))
}

func memCopyGas(mem *Memory, memorySize uint64, lenWord *uint256.Int) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := bigWordGas(lenWord)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	copyGas := words * params.CopyGas
	if gas+copyGas < gas {
		return 0, ErrGasUintOverflow
	}
	return gas + copyGas, nil
}

func gasExtCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memCopyGas(mem, memorySize, stack.back(3))
}

func gasMLoad(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCostAt(mem, memorySize)
}

func gasMStore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCostAt(mem, memorySize)
}

func gasMStore8(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCostAt(mem, memorySize)
}

func gasMcopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := bigWordGas(stack.back(2))
	if overflow {
		return 0, ErrGasUintOverflow
	}
	copyGas := words * params.CopyGas
	if gas+copyGas < gas {
		return 0, ErrGasUintOverflow
	}
	return gas + copyGas, nil
}

// --- SSTORE, across every hardfork generation ---

func gasSStoreLegacy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc := storageKey(stack.back(0))
	newVal := stack.back(1)
	current := evm.StateDB.GetState(contract.Address(), loc)
	if current.Big().Sign() == 0 && newVal.Sign() != 0 {
		return params.SstoreSetGas, nil
	} else if current.Big().Sign() != 0 && newVal.Sign() == 0 {
		evm.StateDB.AddRefund(params.SstoreClearRefund)
		return params.SstoreResetGas, nil
	}
	return params.SstoreResetGas, nil
}

// gasSStoreEIP1283 implements net-metered SSTORE (EIP-1283), later
// corrected for the sentry-gas underflow by EIP-2200.
func gasSStoreEIP1283(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return netSstoreGas(evm, contract, stack, false)
}

func gasSStoreEIP2200(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	return netSstoreGas(evm, contract, stack, false)
}

func netSstoreGas(evm *EVM, contract *Contract, stack *Stack, eip2929 bool) (uint64, error) {
	loc := storageKey(stack.back(0))
	newVal := stack.back(1)
	addr := contract.Address()

	current := evm.StateDB.GetState(addr, loc)
	if current == (storageKey(newVal)) {
		return params.NetSstoreNoopGas, nil
	}
	original := evm.StateDB.GetCommittedState(addr, loc)
	if original == current {
		if original.Big().Sign() == 0 {
			return params.NetSstoreInitGas, nil
		}
		if newVal.Sign() == 0 {
			evm.StateDB.AddRefund(params.NetSstoreClearRefund)
		}
		return params.NetSstoreCleanGas, nil
	}
	if original.Big().Sign() != 0 {
		if current.Big().Sign() == 0 {
			evm.StateDB.SubRefund(params.NetSstoreClearRefund)
		} else if newVal.Sign() == 0 {
			evm.StateDB.AddRefund(params.NetSstoreClearRefund)
		}
	}
	if original == storageKey(newVal) {
		if original.Big().Sign() == 0 {
			evm.StateDB.AddRefund(params.NetSstoreResetClearRefund)
		} else {
			evm.StateDB.AddRefund(params.NetSstoreResetRefund)
		}
	}
	return params.NetSstoreDirtyGas, nil
}

// gasSStoreEIP2929 applies warm/cold access metering (Berlin) on top of
// the EIP-2200 net-metering rule.
func gasSStoreEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2929 {
		return 0, ErrOutOfGas
	}
	addr := contract.Address()
	loc := storageKey(stack.back(0))

	var cost uint64
	if !evm.AccessList.SlotWarm(addr, loc) {
		cost = params.ColdSloadCostEIP2929
		evm.AccessList.AddSlot(addr, loc)
	}
	dyn, err := gasSStoreEIP2200(evm, contract, stack, nil, 0)
	if err != nil {
		return 0, err
	}
	if dyn == params.NetSstoreCleanGas {
		dyn = params.WarmStorageReadCostEIP2929
	} else if dyn == params.NetSstoreDirtyGas {
		dyn -= params.ColdSloadCostEIP2929
	}
	return cost + dyn, nil
}

// gasSStoreEIP3529 is the Berlin rule unchanged: the dynamic-gas cost
// and the refunds it records are those of EIP-2929. No refund cap
// (MaxRefundQuotient) is applied, here or anywhere else in this module.
func gasSStoreEIP3529(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasSStoreEIP2929(evm, contract, stack, mem, memorySize)
}

func storageKey(w *uint256.Int) common.Hash {
	b := w.Bytes32()
	return common.BytesToHash(b[:])
}

// --- EXTCODESIZE/EXTCODEHASH/BALANCE/EXTCODECOPY warm-cold metering ---

func gasEip2929AccountCheck(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := common.AddressFromWord(stack.back(0))
	if evm.AccessList.AddressWarm(addr) {
		return 0, nil
	}
	evm.AccessList.AddAddress(addr)
	return params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929, nil
}

func gasExtCodeCopyEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memCopyGas(mem, memorySize, stack.back(3))
	if err != nil {
		return 0, err
	}
	addr := common.AddressFromWord(stack.back(0))
	if evm.AccessList.AddressWarm(addr) {
		return gas, nil
	}
	evm.AccessList.AddAddress(addr)
	return gas + params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929, nil
}

func gasSLoadEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := contract.Address()
	loc := storageKey(stack.back(0))
	if evm.AccessList.SlotWarm(addr, loc) {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.AccessList.AddSlot(addr, loc)
	return params.ColdSloadCostEIP2929, nil
}

func eip2929AccessGas(evm *EVM, addr common.Address) uint64 {
	if evm.AccessList.AddressWarm(addr) {
		return params.WarmStorageReadCostEIP2929
	}
	evm.AccessList.AddAddress(addr)
	return params.ColdAccountAccessCostEIP2929
}

func gasCallEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCallLegacyCore(evm, contract, stack, mem, memorySize, true)
	if err != nil {
		return 0, err
	}
	addr := common.AddressFromWord(stack.back(1))
	return gas + eip2929AccessGas(evm, addr) - params.WarmStorageReadCostEIP2929, nil
}

func gasCallCodeEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCallCodeLegacyCore(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.AddressFromWord(stack.back(1))
	return gas + eip2929AccessGas(evm, addr) - params.WarmStorageReadCostEIP2929, nil
}

func gasStaticCallEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.AddressFromWord(stack.back(1))
	avail := contract.Gas - gas - eip2929AccessGas(evm, addr) + params.WarmStorageReadCostEIP2929
	return gas + callGas(true, avail, 0, stack.back(0)) + eip2929AccessGas(evm, addr) - params.WarmStorageReadCostEIP2929, nil
}

func gasDelegateCallEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.AddressFromWord(stack.back(1))
	return gas + callGas(true, contract.Gas-gas, 0, stack.back(0)) + eip2929AccessGas(evm, addr) - params.WarmStorageReadCostEIP2929, nil
}

func gasSelfdestructEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	beneficiary := common.AddressFromWord(stack.back(0))
	if !evm.AccessList.AddressWarm(beneficiary) {
		gas = params.ColdAccountAccessCostEIP2929
		evm.AccessList.AddAddress(beneficiary)
	}
	if !evm.StateDB.Empty(contract.Address()) && evm.StateDB.GetBalance(contract.Address()).Sign() != 0 {
		if !evm.StateDB.Exist(beneficiary) {
			gas += params.CallNewAccountGas
		}
	}
	if !evm.StateDB.HasSuicided(contract.Address()) {
		evm.StateDB.AddRefund(params.SstoreClearRefund)
	}
	return gas, nil
}

func gasSelfdestructEIP3529(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	beneficiary := common.AddressFromWord(stack.back(0))
	if !evm.AccessList.AddressWarm(beneficiary) {
		gas = params.ColdAccountAccessCostEIP2929
		evm.AccessList.AddAddress(beneficiary)
	}
	if !evm.StateDB.Empty(contract.Address()) && evm.StateDB.GetBalance(contract.Address()).Sign() != 0 {
		if !evm.StateDB.Exist(beneficiary) {
			gas += params.CallNewAccountGas
		}
	}
	return gas, nil
}

func gasSelfdestructLegacy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	beneficiary := common.AddressFromWord(stack.back(0))
	if evm.chainRules.IsEIP158 {
		if !evm.StateDB.Empty(contract.Address()) && evm.StateDB.GetBalance(contract.Address()).Sign() != 0 && !evm.StateDB.Exist(beneficiary) {
			gas = params.CallNewAccountGas
		}
	}
	if !evm.StateDB.HasSuicided(contract.Address()) {
		evm.StateDB.AddRefund(params.SstoreClearRefund)
	}
	return gas, nil
}

func gasSelfdestructEIP150(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasSelfdestructLegacy(evm, contract, stack, mem, memorySize)
}

// --- CREATE/CREATE2 initcode metering (EIP-3860) ---

func gasCreate(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCostAt(mem, memorySize)
}

func gasCreate2(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := bigWordGas(stack.back(2))
	if overflow {
		return 0, ErrGasUintOverflow
	}
	hashGas := words * params.GasFastestStep
	if gas+hashGas < gas {
		return 0, ErrGasUintOverflow
	}
	return gas + hashGas, nil
}

func gasCreateEip3860(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size := stack.back(2)
	if !size.IsUint64() || size.Uint64() > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	words := toWordSize(size.Uint64())
	return gas + words*params.InitCodeWordGasEIP3860, nil
}

func gasCreate2Eip3860(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate2(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size := stack.back(2)
	if !size.IsUint64() || size.Uint64() > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	words := toWordSize(size.Uint64())
	return gas + words*params.InitCodeWordGasEIP3860, nil
}

// --- CALL family, legacy (pre-Berlin) gas computation ---

func gasCallLegacy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCallLegacyCore(evm, contract, stack, mem, memorySize, true)
}

func gasCallLegacyCore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64, checkAccountCreation bool) (uint64, error) {
	var (
		gas          uint64
		transfersValue = !stack.back(2).IsZero()
		addr           = common.AddressFromWord(stack.back(1))
	)
	if evm.chainRules.IsEIP158 {
		if transfersValue && evm.StateDB.Empty(addr) {
			gas += params.CallNewAccountGas
		}
	} else if !evm.StateDB.Exist(addr) {
		gas += params.CallNewAccountGas
	}
	if transfersValue {
		gas += params.CallValueTransferGas
	}
	memGas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	if gas+memGas < gas {
		return 0, ErrGasUintOverflow
	}
	gas += memGas
	avail := contract.Gas - gas
	return gas + callGas(evm.chainRules.IsEIP150, avail, gas, stack.back(0)), nil
}

func gasCallCodeLegacy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCallCodeLegacyCore(evm, contract, stack, mem, memorySize)
}

func gasCallCodeLegacyCore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memGas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	var gas uint64
	if !stack.back(2).IsZero() {
		gas += params.CallValueTransferGas
	}
	gas += memGas
	avail := contract.Gas - gas
	return gas + callGas(evm.chainRules.IsEIP150, avail, gas, stack.back(0)), nil
}

func gasDelegateCallLegacy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCostAt(mem, memorySize)
	if err != nil {
		return 0, err
	}
	avail := contract.Gas - gas
	return gas + callGas(evm.chainRules.IsEIP150, avail, gas, stack.back(0)), nil
}

func gasStaticCallLegacy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasDelegateCallLegacy(evm, contract, stack, mem, memorySize)
}
