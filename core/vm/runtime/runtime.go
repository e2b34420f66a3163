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

// Package runtime provides a harness for running EVM bytecode outside of a
// full blockchain, the way a test vector runner or a CLI "evm run" command
// would: construct a Config, call Execute/Call/Create, and inspect the
// returned state/gas/logs.
package runtime

import (
	"math"
	"math/big"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/core/vm"
	"github.com/evmforge/evmcore/crypto"
	"github.com/evmforge/evmcore/params"
	"github.com/holiman/uint256"
)

// Config adjusts the EVM constructed by Execute/Call/Create. Zero-value
// fields are filled in with sensible defaults by setDefaults.
type Config struct {
	ChainConfig *params.ChainConfig
	Difficulty  *big.Int
	Origin      common.Address
	Coinbase    common.Address
	BlockNumber *big.Int
	Time        uint64
	GasLimit    uint64
	GasPrice    *big.Int
	Value       *uint256.Int
	BaseFee     *big.Int

	State     vm.StateDB
	GetHashFn func(n uint64) common.Hash

	// OnStep, if set, is wired into the interpreter to trace each opcode;
	// an error return aborts execution.
	OnStep func(vm.StepEvent) error
}

func setDefaults(cfg *Config) {
	if cfg.ChainConfig == nil {
		cfg.ChainConfig = params.MainnetChainConfig
	}
	if cfg.Difficulty == nil {
		cfg.Difficulty = new(big.Int)
	}
	if cfg.GasPrice == nil {
		cfg.GasPrice = new(big.Int)
	}
	if cfg.Value == nil {
		cfg.Value = new(uint256.Int)
	}
	if cfg.BlockNumber == nil {
		cfg.BlockNumber = new(big.Int)
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = math.MaxUint64 / 2
	}
	if cfg.BaseFee == nil {
		cfg.BaseFee = new(big.Int).SetUint64(params.InitialBaseFee)
	}
	if cfg.State == nil {
		cfg.State = vm.NewMemoryStateDB()
	}
	if cfg.GetHashFn == nil {
		cfg.GetHashFn = func(n uint64) common.Hash {
			return common.BytesToHash(crypto.Keccak256([]byte(new(big.Int).SetUint64(n).String())))
		}
	}
}

func newEVM(cfg *Config) *vm.EVM {
	blockCtx := vm.BlockContext{
		GetHash:     cfg.GetHashFn,
		Coinbase:    cfg.Coinbase,
		BlockNumber: cfg.BlockNumber,
		Time:        cfg.Time,
		Difficulty:  cfg.Difficulty,
		GasLimit:    cfg.GasLimit,
		BaseFee:     cfg.BaseFee,
	}
	txCtx := vm.TxContext{
		Origin:   cfg.Origin,
		GasPrice: cfg.GasPrice,
	}
	evm := vm.NewEVM(blockCtx, txCtx, cfg.State, cfg.ChainConfig)
	if cfg.OnStep != nil {
		evm.Interpreter().OnStep = cfg.OnStep
	}
	return evm
}

// Execute runs code as if it were deployed contract code, with input as
// calldata. It is the "run this bytecode in isolation" entry point a fuzzer
// or test-vector runner uses.
func Execute(code, input []byte, cfg *Config) ([]byte, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	var (
		address = common.BytesToAddress([]byte("contract"))
		vmenv   = newEVM(cfg)
		sender  = cfg.Origin
	)
	cfg.State.CreateAccount(address)
	cfg.State.SetCode(address, code)

	ret, leftOverGas, err := vmenv.Call(sender, address, input, cfg.GasLimit, cfg.Value)
	return ret, cfg.GasLimit - leftOverGas, err
}

// Call invokes address's already-deployed code, as an external CALL would.
func Call(address common.Address, input []byte, cfg *Config) ([]byte, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	vmenv := newEVM(cfg)
	sender := cfg.Origin

	ret, leftOverGas, err := vmenv.Call(sender, address, input, cfg.GasLimit, cfg.Value)
	return ret, cfg.GasLimit - leftOverGas, err
}

// Create deploys code as initcode, returning the resulting runtime code and
// the address it was stored at.
func Create(code []byte, cfg *Config) ([]byte, common.Address, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	vmenv := newEVM(cfg)
	sender := cfg.Origin

	ret, address, leftOverGas, err := vmenv.Create(sender, code, cfg.GasLimit, cfg.Value)
	return ret, address, cfg.GasLimit - leftOverGas, err
}
