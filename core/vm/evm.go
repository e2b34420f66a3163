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
	"math/big"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/crypto"
	"github.com/evmforge/evmcore/params"
	"github.com/holiman/uint256"
)

// BlockContext groups the block-wide values the EEI exposes read-only
// (COINBASE/TIMESTAMP/NUMBER/DIFFICULTY/GASLIMIT/CHAINID/BASEFEE/
// BLOBBASEFEE), independent of any one call frame.
type BlockContext struct {
	GetHash func(uint64) common.Hash

	Coinbase    common.Address
	GasLimit    uint64
	BlockNumber *big.Int
	Time        uint64
	Difficulty  *big.Int
	BaseFee     *big.Int
	BlobBaseFee *big.Int
}

// TxContext groups the per-transaction values the EEI exposes
// (ORIGIN/GASPRICE/BLOBHASH).
type TxContext struct {
	Origin     common.Address
	GasPrice   *big.Int
	BlobHashes []common.Hash
}

// EVM is the single execution engine: one shape for
// every hardfork, parameterized by Rules and a JumpTable built once per
// (block number, time) pair rather than branching per-opcode at runtime.
type EVM struct {
	Context   BlockContext
	TxContext TxContext
	StateDB   StateDB

	chainConfig *params.ChainConfig
	chainRules  params.Rules

	interpreter *EVMInterpreter

	AccessList *AccessList

	depth int

	// abort is set by an external caller (e.g. a timeout) to request the
	// interpreter halt at the next loop iteration.
	abort int32

	readOnly bool
}

// NewEVM constructs an EVM bound to blockCtx/txCtx/statedb at the rules
// implied by chainConfig and the block's (number, time).
func NewEVM(blockCtx BlockContext, txCtx TxContext, statedb StateDB, chainConfig *params.ChainConfig) *EVM {
	evm := &EVM{
		Context:     blockCtx,
		TxContext:   txCtx,
		StateDB:     statedb,
		chainConfig: chainConfig,
		chainRules:  chainConfig.Rules(blockCtx.BlockNumber, blockCtx.Time),
	}
	evm.AccessList = NewAccessList(PrecompiledAddresses()...)
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

func (evm *EVM) ChainConfig() *params.ChainConfig { return evm.chainConfig }

func (evm *EVM) Interpreter() *EVMInterpreter { return evm.interpreter }

// Call executes the code at addr in a new call frame, the CALL
// sub-protocol: a state checkpoint is taken, value is transferred
// unconditionally, and on error everything since the checkpoint
// unwinds.
func (evm *EVM) Call(caller common.Address, addr common.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if value.Sign() != 0 && !evm.Context.CanTransfer(evm, caller, value) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	if !evm.StateDB.Exist(addr) {
		if _, isPrecompile := precompiles[addr]; !isPrecompile && value.Sign() == 0 {
			return nil, gas, nil
		}
		evm.StateDB.CreateAccount(addr)
	}
	evm.transfer(caller, addr, value)

	if pc, ok := precompiles[addr]; ok {
		ret, gas, err = runPrecompiled(pc, input, gas)
	} else {
		code := evm.StateDB.GetCode(addr)
		contract := NewContract(caller, addr, value, gas)
		contract.SetCallCode(evm.StateDB.GetCodeHash(addr), code)
		evm.depth++
		ret, err = evm.interpreter.Run(contract, input, false)
		gas = contract.Gas
		evm.depth--
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// CallCode is like Call but executes addr's code in the caller's own
// storage/identity context (Address()==caller, Code from addr).
func (evm *EVM) CallCode(caller common.Address, addr common.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if value.Sign() != 0 && !evm.Context.CanTransfer(evm, caller, value) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	if pc, ok := precompiles[addr]; ok {
		ret, gas, err = runPrecompiled(pc, input, gas)
	} else {
		code := evm.StateDB.GetCode(addr)
		contract := NewContract(caller, caller, value, gas)
		contract.SetCallCode(evm.StateDB.GetCodeHash(addr), code)
		evm.depth++
		ret, err = evm.interpreter.Run(contract, input, false)
		gas = contract.Gas
		evm.depth--
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// DelegateCall runs addr's code with the *current* frame's caller and
// value preserved.
func (evm *EVM) DelegateCall(originCaller common.Address, self common.Address, addr common.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	if pc, ok := precompiles[addr]; ok {
		ret, gas, err = runPrecompiled(pc, input, gas)
	} else {
		code := evm.StateDB.GetCode(addr)
		contract := NewContract(originCaller, self, value, gas)
		contract.IsDelegate = true
		contract.SetCallCode(evm.StateDB.GetCodeHash(addr), code)
		evm.depth++
		ret, err = evm.interpreter.Run(contract, input, false)
		gas = contract.Gas
		evm.depth--
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// StaticCall runs addr's code under the read-only restriction:
// SSTORE/LOG/CREATE/SELFDESTRUCT/value-transferring CALL all trap with
// ErrWriteProtection for the remainder of this sub-call.
func (evm *EVM) StaticCall(caller common.Address, addr common.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	if pc, ok := precompiles[addr]; ok {
		ret, gas, err = runPrecompiled(pc, input, gas)
	} else {
		code := evm.StateDB.GetCode(addr)
		contract := NewContract(caller, addr, new(uint256.Int), gas)
		contract.SetCallCode(evm.StateDB.GetCodeHash(addr), code)
		evm.depth++
		wasReadOnly := evm.readOnly
		evm.readOnly = true
		ret, err = evm.interpreter.Run(contract, input, true)
		evm.readOnly = wasReadOnly
		gas = contract.Gas
		evm.depth--
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// Create deploys new contract code returned by running initcode: nonce
// bump, address derivation, code-size/initcode-size limits, and
// EIP-3541's 0xef prohibition all apply before the returned code is
// persisted.
func (evm *EVM) Create(caller common.Address, code []byte, gas uint64, value *uint256.Int) (ret []byte, contractAddr common.Address, leftOverGas uint64, err error) {
	nonce := evm.StateDB.GetNonce(caller)
	evm.StateDB.SetNonce(caller, nonce+1)
	contractAddr = crypto.CreateAddress(caller, nonce)
	return evm.create(caller, code, gas, value, contractAddr)
}

// Create2 derives the deployment address from a caller-chosen salt and
// the initcode hash (EIP-1014), instead of the sender's nonce.
func (evm *EVM) Create2(caller common.Address, code []byte, gas uint64, value *uint256.Int, salt *uint256.Int) (ret []byte, contractAddr common.Address, leftOverGas uint64, err error) {
	nonce := evm.StateDB.GetNonce(caller)
	evm.StateDB.SetNonce(caller, nonce+1)
	inithash := crypto.Keccak256(code)
	contractAddr = crypto.CreateAddress2(caller, salt.Bytes32(), inithash)
	return evm.create(caller, code, gas, value, contractAddr)
}

func (evm *EVM) create(caller common.Address, code []byte, gas uint64, value *uint256.Int, addr common.Address) ([]byte, common.Address, uint64, error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, addr, gas, ErrDepth
	}
	if !evm.Context.CanTransfer(evm, caller, value) {
		return nil, addr, gas, ErrInsufficientBalance
	}
	if uint64(len(code)) > params.MaxInitCodeSize {
		return nil, addr, gas, ErrMaxInitCodeSizeExceeded
	}
	if evm.StateDB.GetNonce(addr) != 0 || evm.StateDB.GetCodeHash(addr) != (common.Hash{}) {
		return nil, addr, 0, ErrContractAddressCollision
	}
	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(addr)
	evm.StateDB.SetNonce(addr, 1)
	evm.transfer(caller, addr, value)

	contract := NewContract(caller, addr, value, gas)
	contract.SetCallCode(common.Hash{}, code)

	evm.depth++
	ret, err := evm.interpreter.Run(contract, nil, false)
	evm.depth--

	maxCodeSizeExceeded := len(ret) > params.MaxCodeSize
	if err == nil && !maxCodeSizeExceeded && (len(ret) == 0 || ret[0] != 0xef) {
		createDataGas := uint64(len(ret)) * params.CreateDataGas
		if contract.UseGas(createDataGas) {
			evm.StateDB.SetCode(addr, ret)
		} else {
			err = ErrCodeStoreOutOfGas
		}
	} else if maxCodeSizeExceeded && err == nil {
		err = ErrMaxCodeSizeExceeded
	} else if len(ret) > 0 && ret[0] == 0xef && err == nil {
		err = ErrInvalidCode
	}

	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			contract.Gas = 0
		}
	}
	return ret, addr, contract.Gas, err
}

func (evm *EVM) transfer(from, to common.Address, value *uint256.Int) {
	if value.Sign() == 0 {
		return
	}
	evm.StateDB.SubBalance(from, value)
	evm.StateDB.AddBalance(to, value)
}

// CanTransfer reports whether addr's balance covers amount; wired
// through BlockContext so tests can stub it without a full StateDB.
func (bc BlockContext) CanTransfer(evm *EVM, addr common.Address, amount *uint256.Int) bool {
	return evm.StateDB.GetBalance(addr).Cmp(amount) >= 0
}
