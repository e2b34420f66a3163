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

	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/crypto"
	"github.com/evmforge/evmcore/rlp"
)

// Header is a pre-London block header, modeled as a 12-field list. Only the
// fields the block validator and the EVM's BlockContext (getBlockHash,
// COINBASE/TIMESTAMP/etc.) actually consume are modeled; the rest of a
// production header (mix digest, extra data, nonce) is out of scope for
// this core.
type Header struct {
	ParentHash       common.Hash
	UncleHash        common.Hash
	Coinbase         common.Address
	Root             common.Hash // state root, opaque to this core
	TransactionsTrie common.Hash
	ReceiptsTrie     common.Hash
	Difficulty       *big.Int
	Number           *big.Int
	GasLimit         uint64
	GasUsed          uint64
	Time             uint64
	BaseFee          *big.Int // nil pre-London
}

// Hash returns the Keccak256 hash of the RLP-encoded header fields,
// excluding TransactionsTrie/UncleHash self-references would be
// circular only if those fields hashed themselves in; here they're
// ordinary fields like any other and are included, matching how a real
// header hash commits to the whole header.
func (h *Header) Hash() common.Hash {
	return crypto.Keccak256Hash(mustEncodeHeader(h))
}

func mustEncodeHeader(h *Header) []byte {
	baseFee := h.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}
	enc, _ := rlp.EncodeToBytes([]interface{}{
		h.ParentHash.Bytes(),
		h.UncleHash.Bytes(),
		h.Coinbase.Bytes(),
		h.Root.Bytes(),
		h.TransactionsTrie.Bytes(),
		h.ReceiptsTrie.Bytes(),
		h.Difficulty,
		h.Number,
		h.GasLimit,
		h.GasUsed,
		h.Time,
		baseFee,
	})
	return enc
}

// EmptyUncleHash is keccak256(rlp([])), the UncleHash of a block with
// no uncles.
var EmptyUncleHash = crypto.Keccak256Hash(rlp.EncodeList(nil))
