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
	"math/big"
	"testing"

	"github.com/evmforge/evmcore/common"
)

func validSignedTx() *Transaction {
	return &Transaction{
		Nonce:    0,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		To:       &common.Address{0x01},
		Value:    big.NewInt(0),
		V:        big.NewInt(27),
		R:        big.NewInt(1),
		S:        big.NewInt(1),
	}
}

func TestIntrinsicGasSimpleTransfer(t *testing.T) {
	tx := validSignedTx()
	if got := tx.IntrinsicGas(); got != 21000 {
		t.Errorf("IntrinsicGas() = %d, want 21000", got)
	}
}

func TestIntrinsicGasContractCreationSurcharge(t *testing.T) {
	tx := validSignedTx()
	tx.To = nil
	if got := tx.IntrinsicGas(); got != 53000 {
		t.Errorf("IntrinsicGas() for a CREATE tx = %d, want 53000", got)
	}
}

func TestIntrinsicGasDataBytes(t *testing.T) {
	tx := validSignedTx()
	tx.Data = []byte{0x00, 0x01, 0x02}
	want := uint64(21000 + 4 + 16 + 16)
	if got := tx.IntrinsicGas(); got != want {
		t.Errorf("IntrinsicGas() with data = %d, want %d", got, want)
	}
}

func TestValidateAcceptsWellFormedTx(t *testing.T) {
	if err := validSignedTx().Validate(); err != nil {
		t.Errorf("Validate() on a well-formed tx: %v", err)
	}
}

func TestValidateRejectsMissingSignature(t *testing.T) {
	tx := validSignedTx()
	tx.V = nil
	if err := tx.Validate(); err != ErrInvalidSig {
		t.Errorf("Validate() with nil V = %v, want ErrInvalidSig", err)
	}
}

func TestValidateRejectsNonPositiveSignature(t *testing.T) {
	tx := validSignedTx()
	tx.R = big.NewInt(0)
	if err := tx.Validate(); err != ErrInvalidSig {
		t.Errorf("Validate() with zero R = %v, want ErrInvalidSig", err)
	}
}

func TestValidateRejectsGasBelowIntrinsic(t *testing.T) {
	tx := validSignedTx()
	tx.Gas = 100
	if err := tx.Validate(); err != ErrGasLimitLow {
		t.Errorf("Validate() with too little gas = %v, want ErrGasLimitLow", err)
	}
}

func TestSerializeRoundTripsDeterministically(t *testing.T) {
	tx := validSignedTx()
	a := tx.Serialize()
	b := tx.Serialize()
	if len(a) == 0 || string(a) != string(b) {
		t.Error("Serialize() should be deterministic for an unchanged transaction")
	}
}

func TestSerializeDiffersOnContractCreation(t *testing.T) {
	tx := validSignedTx()
	withTo := tx.Serialize()
	tx.To = nil
	withoutTo := tx.Serialize()
	if string(withTo) == string(withoutTo) {
		t.Error("Serialize() should differ between a call and a contract creation")
	}
}
