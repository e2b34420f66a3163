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

package types

import (
	"errors"
	"math/big"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/rlp"
)

// ErrInvalidSig and ErrGasLimitLow are the per-index transaction
// validation failures Validate returns. ErrNonceTooLow and
// ErrIntrinsicGas are declared here but nothing in this module returns
// them.
var (
	ErrInvalidSig    = errors.New("invalid transaction signature")
	ErrNonceTooLow   = errors.New("nonce too low")
	ErrIntrinsicGas  = errors.New("intrinsic gas too low")
	ErrGasLimitLow   = errors.New("gas limit below intrinsic gas")
)

// Transaction is a legacy-form transaction, sufficient to exercise the
// tx-trie and per-transaction validation rules. The EIP-2718
// typed-envelope encoding is not modeled: no operation in this core
// branches on transaction type.
type Transaction struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *common.Address // nil for contract creation
	Value    *big.Int
	Data     []byte

	V, R, S *big.Int // signature
}

// IntrinsicGas is the Yellow Paper's G_txdatazero/G_txdatanonzero plus
// G_transaction base cost.
func (tx *Transaction) IntrinsicGas() uint64 {
	const (
		txGas          = 21000
		txDataZeroGas  = 4
		txDataNonZero  = 16
	)
	gas := uint64(txGas)
	if tx.To == nil {
		gas += 32000 // CREATE transaction surcharge
	}
	for _, b := range tx.Data {
		if b == 0 {
			gas += txDataZeroGas
		} else {
			gas += txDataNonZero
		}
	}
	return gas
}

// Validate performs the per-transaction intrinsic-field checks.
// Signature *verification* is delegated to secp256k1 recovery (out of
// scope here: presence of V/R/S is checked, not their cryptographic
// validity against a sender).
func (tx *Transaction) Validate() error {
	if tx.V == nil || tx.R == nil || tx.S == nil {
		return ErrInvalidSig
	}
	if tx.R.Sign() <= 0 || tx.S.Sign() <= 0 {
		return ErrInvalidSig
	}
	if tx.Gas < tx.IntrinsicGas() {
		return ErrGasLimitLow
	}
	return nil
}

// Serialize returns the RLP encoding of the transaction's fields, the
// "value" half of the (rlp(i), tx.serialize()) pair inserted into the
// transactions trie.
func (tx *Transaction) Serialize() []byte {
	to := []byte{}
	if tx.To != nil {
		to = tx.To.Bytes()
	}
	enc, _ := rlp.EncodeToBytes([]interface{}{
		tx.Nonce,
		tx.GasPrice,
		tx.Gas,
		to,
		tx.Value,
		tx.Data,
		tx.V,
		tx.R,
		tx.S,
	})
	return enc
}
