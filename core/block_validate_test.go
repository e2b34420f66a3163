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

package core

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/evmforge/evmcore/core/types"
	"github.com/evmforge/evmcore/crypto"
)

func emptyBlock(number int64) *types.Block {
	h := &types.Header{
		Number:           big.NewInt(number),
		GasLimit:         30000000,
		GasUsed:          0,
		Difficulty:       new(big.Int),
		TransactionsTrie: crypto.KeccakRLPEmpty,
		UncleHash:        types.EmptyUncleHash,
	}
	return &types.Block{Header: h}
}

func TestValidateBlock_GenesisAccepted(t *testing.T) {
	b := emptyBlock(0)
	if err := ValidateBlock(context.Background(), nil, b); err != nil {
		t.Fatalf("genesis block rejected: %v", err)
	}
}

func TestValidateBlock_EmptyTxTrieOK(t *testing.T) {
	b := emptyBlock(1)
	if err := ValidateBlock(context.Background(), nil, b); err != nil {
		t.Fatalf("empty tx trie should validate: %v", err)
	}
}

func TestValidateBlock_WrongTxTrieRejected(t *testing.T) {
	b := emptyBlock(1)
	b.Header.TransactionsTrie = (&types.Header{}).Hash() // definitely not KeccakRLPEmpty
	if err := ValidateBlock(context.Background(), nil, b); err == nil {
		t.Fatal("expected error for mismatched transactions trie root")
	}
}

func TestValidateBlock_TxTrieWithTransactions(t *testing.T) {
	b := emptyBlock(1)
	tx := &types.Transaction{
		Nonce:    0,
		GasPrice: big.NewInt(1),
		Gas:      53000, // 21000 base + 32000 contract-creation surcharge
		Value:    new(big.Int),
		V:        big.NewInt(27),
		R:        big.NewInt(1),
		S:        big.NewInt(1),
	}
	b.Transactions = []*types.Transaction{tx}

	// Leave TransactionsTrie at the empty-block default: this block has a
	// valid transaction now, so the precomputed empty-trie root no longer
	// matches the reconstructed root.
	if err := ValidateBlock(context.Background(), nil, b); err == nil {
		t.Fatal("expected tx trie mismatch once a transaction is added without updating the root")
	}
}

func TestValidateBlock_InvalidTransactionRejected(t *testing.T) {
	b := emptyBlock(1)
	tx := &types.Transaction{
		Nonce:    0,
		GasPrice: big.NewInt(1),
		Gas:      100, // below intrinsic gas
		Value:    new(big.Int),
		V:        big.NewInt(27),
		R:        big.NewInt(1),
		S:        big.NewInt(1),
	}
	b.Transactions = []*types.Transaction{tx}

	if err := ValidateBlock(context.Background(), nil, b); err == nil {
		t.Fatal("expected error for a transaction below intrinsic gas")
	}
}

func TestValidateTransactions_CollectsAllOffendingIndices(t *testing.T) {
	good := &types.Transaction{
		Nonce: 0, GasPrice: big.NewInt(1), Gas: 53000, Value: new(big.Int),
		V: big.NewInt(27), R: big.NewInt(1), S: big.NewInt(1),
	}
	badGas := &types.Transaction{
		Nonce: 1, GasPrice: big.NewInt(1), Gas: 100, Value: new(big.Int),
		V: big.NewInt(27), R: big.NewInt(1), S: big.NewInt(1),
	}
	badSig := &types.Transaction{
		Nonce: 2, GasPrice: big.NewInt(1), Gas: 21000, Value: new(big.Int),
	}
	txs := []*types.Transaction{good, badGas, badSig}

	errs := ValidateTransactions(txs)
	if !errs.Failed() {
		t.Fatal("expected Failed() to report true")
	}
	if want := []int{1, 2}; len(errs.Indices) != len(want) || errs.Indices[0] != want[0] || errs.Indices[1] != want[1] {
		t.Fatalf("Indices = %v, want %v", errs.Indices, want)
	}
	if len(errs.Errs) != 2 {
		t.Fatalf("expected 2 collected errors, got %d", len(errs.Errs))
	}
}

func TestValidateTransactions_NoFailures(t *testing.T) {
	good := &types.Transaction{
		Nonce: 0, GasPrice: big.NewInt(1), Gas: 53000, Value: new(big.Int),
		V: big.NewInt(27), R: big.NewInt(1), S: big.NewInt(1),
	}
	errs := ValidateTransactions([]*types.Transaction{good})
	if errs.Failed() {
		t.Fatalf("expected no failures, got %v", errs)
	}
}

func TestValidateBlock_InvalidTransactionListsAllIndices(t *testing.T) {
	b := emptyBlock(1)
	badGas := &types.Transaction{
		Nonce: 0, GasPrice: big.NewInt(1), Gas: 100, Value: new(big.Int),
		V: big.NewInt(27), R: big.NewInt(1), S: big.NewInt(1),
	}
	badSig := &types.Transaction{
		Nonce: 1, GasPrice: big.NewInt(1), Gas: 21000, Value: new(big.Int),
	}
	b.Transactions = []*types.Transaction{badGas, badSig}

	err := ValidateBlock(context.Background(), nil, b)
	if err == nil {
		t.Fatal("expected error for a block with two invalid transactions")
	}
	if !strings.Contains(err.Error(), "0:") || !strings.Contains(err.Error(), "1:") {
		t.Fatalf("expected error to list both offending indices, got: %v", err)
	}
}

func TestValidateBlock_TooManyUncles(t *testing.T) {
	b := emptyBlock(1)
	b.Uncles = []*types.Header{
		{Number: big.NewInt(0), Difficulty: new(big.Int)},
		{Number: big.NewInt(0), Difficulty: new(big.Int)},
		{Number: big.NewInt(0), Difficulty: new(big.Int)},
	}
	if err := ValidateBlock(context.Background(), nil, b); err == nil {
		t.Fatal("expected error for more than two uncles")
	}
}

func TestValidateBlock_DuplicateUncles(t *testing.T) {
	b := emptyBlock(1)
	u := &types.Header{Number: big.NewInt(0), Difficulty: new(big.Int)}
	b.Uncles = []*types.Header{u, u}
	b.Header.UncleHash = uncleHash(b.Uncles)
	if err := ValidateBlock(context.Background(), nil, b); err == nil {
		t.Fatal("expected error for duplicate uncles")
	}
}

func TestValidateBlock_UncleHashMismatch(t *testing.T) {
	b := emptyBlock(1)
	b.Uncles = []*types.Header{{Number: big.NewInt(0), Difficulty: new(big.Int)}}
	// Header.UncleHash left at the no-uncles default, which won't match.
	if err := ValidateBlock(context.Background(), nil, b); err == nil {
		t.Fatal("expected error for uncle hash mismatch")
	}
}

func TestValidateBlock_UncleHashRoundTrips(t *testing.T) {
	b := emptyBlock(5)
	b.Uncles = []*types.Header{
		{Number: big.NewInt(3), Difficulty: new(big.Int)},
		{Number: big.NewInt(4), Difficulty: new(big.Int)},
	}
	b.Header.UncleHash = uncleHash(b.Uncles)

	// With no Blockchain to check ancestry against, the hash round-trip
	// alone must be enough to pass uncle validation.
	if err := validateUncles(nil, b); err != nil {
		t.Fatalf("uncle hash should round-trip: %v", err)
	}
}
