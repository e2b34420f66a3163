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

// Package core holds the block-level structural validation that sits
// above the interpreter: the transactions-trie root, the uncle-hash
// check, and uncle eligibility.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/core/types"
	"github.com/evmforge/evmcore/crypto"
	"github.com/evmforge/evmcore/rlp"
	"github.com/evmforge/evmcore/trie"
)

// Errors a block can fail validation with.
var (
	ErrTooManyUncles       = errors.New("too many uncles")
	ErrDuplicateUncle      = errors.New("duplicate uncle")
	ErrInvalidUncleHash    = errors.New("invalid uncle hash")
	ErrInvalidUncle        = errors.New("invalid uncle header")
	ErrInvalidTxTrieRoot   = errors.New("invalid transactions trie root")
	ErrInvalidTransaction  = errors.New("invalid transaction")
)

// Blockchain is the minimal chain-lookup surface an uncle validity check
// needs: was this header seen before, and is it within the 7-generation
// window a valid uncle must fall in.
type Blockchain interface {
	HasHeader(hash common.Hash, number uint64) bool
	GetHeader(hash common.Hash, number uint64) *types.Header
}

// maxUncleDepth is the number of ancestor generations an uncle may be
// taken from (the Yellow Paper's limit).
const maxUncleDepth = 7

// ValidateBlock checks the structural invariants of a block: uncle
// count/distinctness, the uncle-hash commitment, each uncle's own
// validity against chain, and the reconstructed transactions-trie root.
// The three checks run concurrently and are joined before any
// cross-check is reported.
func ValidateBlock(ctx context.Context, bc Blockchain, block *types.Block) error {
	if block.IsGenesis() {
		return validateTxTrie(block)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return validateUncles(bc, block) })
	g.Go(func() error { return validateTxTrie(block) })
	g.Go(func() error { return validateHeader(block.Header) })
	return g.Wait()
}

// validateUncles checks: at most two uncles, all distinct, the
// uncle-hash commitment holds, and each uncle is itself a header this
// chain has actually seen within the allowed depth.
//
// Checking that an uncle hasn't already been included as an ommer
// elsewhere in the chain is not performed here — the same gap the
// original implementation left as a comment. A full node should extend
// Blockchain with an ommer-inclusion index before relying on this in
// production.
func validateUncles(bc Blockchain, block *types.Block) error {
	uncles := block.Uncles
	if len(uncles) > 2 {
		return ErrTooManyUncles
	}
	seen := make(map[common.Hash]bool, len(uncles))
	for _, u := range uncles {
		h := u.Hash()
		if seen[h] {
			return ErrDuplicateUncle
		}
		seen[h] = true
	}
	if got := uncleHash(uncles); got != block.Header.UncleHash {
		return fmt.Errorf("%w: have %s, want %s", ErrInvalidUncleHash, got, block.Header.UncleHash)
	}
	if bc == nil {
		return nil
	}
	number := block.Header.Number.Uint64()
	for _, u := range uncles {
		if u.Number == nil || u.Number.Uint64() >= number {
			return ErrInvalidUncle
		}
		if number-u.Number.Uint64() > maxUncleDepth {
			return ErrInvalidUncle
		}
		if !bc.HasHeader(u.ParentHash, u.Number.Uint64()-1) {
			return ErrInvalidUncle
		}
	}
	return nil
}

// uncleHash computes keccak256(rlp(uncles.map(raw))), the commitment
// block.Header.UncleHash must match.
func uncleHash(uncles []*types.Header) common.Hash {
	items := make([][]byte, len(uncles))
	for i, u := range uncles {
		enc, _ := rlp.EncodeToBytes([]interface{}{
			u.ParentHash.Bytes(), u.UncleHash.Bytes(), u.Coinbase.Bytes(),
			u.Root.Bytes(), u.TransactionsTrie.Bytes(), u.ReceiptsTrie.Bytes(),
			u.Difficulty, u.Number, u.GasLimit, u.GasUsed, u.Time,
		})
		items[i] = enc
	}
	return crypto.Keccak256Hash(rlp.EncodeList(items))
}

// TransactionErrors collects the per-index validation failures found
// while checking every transaction in a block: one (index, error) pair
// per transaction that failed Validate(). The zero value reports no
// failures.
type TransactionErrors struct {
	Indices []int
	Errs    []error
}

// Failed is the boolean summary: whether any transaction failed.
func (e *TransactionErrors) Failed() bool {
	return e != nil && len(e.Indices) > 0
}

// Error lists every offending index alongside its failure.
func (e *TransactionErrors) Error() string {
	if !e.Failed() {
		return "no invalid transactions"
	}
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = fmt.Sprintf("%d: %v", idx, e.Errs[i])
	}
	return fmt.Sprintf("invalid transactions at indices %v: %s", e.Indices, strings.Join(parts, "; "))
}

// ValidateTransactions runs Validate on every transaction, collecting
// all failures rather than stopping at the first so a caller can see
// the complete list of offending indices.
func ValidateTransactions(txs []*types.Transaction) *TransactionErrors {
	var errs TransactionErrors
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			errs.Indices = append(errs.Indices, i)
			errs.Errs = append(errs.Errs, err)
		}
	}
	return &errs
}

// validateTxTrie reconstructs the transactions trie by inserting
// (rlp(i), tx.serialize()) for each transaction and compares the
// resulting root against header.TransactionsTrie; an empty block's
// expected root is KECCAK256_RLP. Every transaction is checked before
// any trie is built, so a failure reports the full set of bad indices
// rather than only the first one encountered.
func validateTxTrie(block *types.Block) error {
	if len(block.Transactions) == 0 {
		if block.Header.TransactionsTrie != crypto.KeccakRLPEmpty {
			return fmt.Errorf("%w: empty block must commit to KECCAK256_RLP", ErrInvalidTxTrieRoot)
		}
		return nil
	}
	if txErrs := ValidateTransactions(block.Transactions); txErrs.Failed() {
		return fmt.Errorf("%w: %s", ErrInvalidTransaction, txErrs)
	}
	t := trie.New(nil)
	for i, tx := range block.Transactions {
		t.Insert(rlp.EncodeUint64(uint64(i)), tx.Serialize())
	}
	if got := t.Hash(); got != block.Header.TransactionsTrie {
		return fmt.Errorf("%w: have %s, want %s", ErrInvalidTxTrieRoot, got, block.Header.TransactionsTrie)
	}
	return nil
}

// validateHeader performs the structural header checks that run
// alongside the trie/uncle cross-checks: non-nil number, sane gas
// accounting.
func validateHeader(h *types.Header) error {
	if h.Number == nil {
		return errors.New("header: missing number")
	}
	if h.GasUsed > h.GasLimit {
		return errors.New("header: gas used exceeds gas limit")
	}
	return nil
}
