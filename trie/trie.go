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

// Package trie is a minimal, insert-only Merkle-Patricia trie: the
// thin wrapper the block validator needs to actually compute a
// transactionsTrie root — an in-memory structure with no disk-backed
// node database.
package trie

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/evmforge/evmcore/common"
	"github.com/evmforge/evmcore/crypto"
	"github.com/evmforge/evmcore/rlp"
)

// node is one of valueNode, *shortNode (leaf or extension) or *fullNode
// (branch). nil represents the empty trie.
type node interface{}

type valueNode []byte

type shortNode struct {
	key []byte // hex-encoded, optionally terminated
	val node
}

type fullNode struct {
	children [17]node // children[16] holds a value when this branch is also a leaf
}

// Trie is a Merkle-Patricia trie keyed by arbitrary byte strings. Build
// one with New; the zero value has no hasher, and Hash panics on it.
type Trie struct {
	root   node
	hasher crypto.Hasher
	cache  *fastcache.Cache // node hashes stored under a monotonic counter key
	seq    uint64
}

// New returns an empty trie. hasher is injectable so a caller can
// substitute a test double; a nil hasher uses crypto.Default.
func New(hasher crypto.Hasher) *Trie {
	if hasher == nil {
		hasher = crypto.Default
	}
	return &Trie{hasher: hasher, cache: fastcache.New(1 << 20)}
}

// Insert adds a key/value pair to the trie. Keys and values are
// arbitrary bytes; the block validator inserts (rlp(i), tx.serialize())
// pairs for each transaction.
func (t *Trie) Insert(key, value []byte) {
	k := keybytesToHex(key)
	t.root = insert(t.root, k, valueNode(value))
}

func insert(n node, key []byte, value node) node {
	if len(key) == 0 {
		return value
	}
	switch n := n.(type) {
	case nil:
		return &shortNode{key: append([]byte(nil), key...), val: value}
	case *shortNode:
		matchlen := prefixLen(key, n.key)
		if matchlen == len(n.key) {
			// Key fully matches this node's key; descend.
			return &shortNode{key: n.key, val: insert(n.val, key[matchlen:], value)}
		}
		// Branch out at the mismatch point.
		branch := &fullNode{}
		if matchlen < len(n.key) {
			branch.children[n.key[matchlen]] = insert(nil, n.key[matchlen+1:], n.val)
		} else {
			branch.children[16] = n.val
		}
		if matchlen < len(key) {
			branch.children[key[matchlen]] = insert(nil, key[matchlen+1:], value)
		} else {
			branch.children[16] = value
		}
		if matchlen == 0 {
			return branch
		}
		return &shortNode{key: key[:matchlen], val: branch}
	case *fullNode:
		cpy := *n
		if len(key) == 0 {
			cpy.children[16] = value
		} else {
			cpy.children[key[0]] = insert(cpy.children[key[0]], key[1:], value)
		}
		return &cpy
	default:
		panic("trie: invalid node type during insert")
	}
}

// Hash computes the root hash of the trie, matching KeccakRLPEmpty for
// an empty trie: when there are no transactions the expected root is
// KECCAK256_RLP.
func (t *Trie) Hash() common.Hash {
	if t.root == nil {
		return t.hasher.Keccak256(rlp.EncodeBytes(nil))
	}
	enc := t.encode(t.root)
	if len(enc) < 32 {
		return t.hasher.Keccak256(enc)
	}
	return t.hasher.Keccak256(enc)
}

// encode returns the RLP encoding of n, substituting a 32-byte hash
// reference for any child whose own encoding is 32 bytes or longer —
// the standard Merkle-Patricia "embedding" rule.
func (t *Trie) encode(n node) []byte {
	switch n := n.(type) {
	case nil:
		return rlp.EncodeBytes(nil)
	case valueNode:
		return rlp.EncodeBytes(n)
	case *shortNode:
		items := [][]byte{rlp.EncodeBytes(hexToCompact(n.key)), t.childRef(n.val)}
		return rlp.EncodeList(items)
	case *fullNode:
		items := make([][]byte, 17)
		for i := 0; i < 16; i++ {
			items[i] = t.childRef(n.children[i])
		}
		if n.children[16] == nil {
			items[16] = rlp.EncodeBytes(nil)
		} else {
			items[16] = t.childRef(n.children[16])
		}
		return rlp.EncodeList(items)
	default:
		panic("trie: invalid node type during encode")
	}
}

// childRef encodes child, returning either the raw encoding (if short
// enough to embed) or a 32-byte hash reference. The hash is stored in
// the node cache under a per-Trie sequence number that is incremented on
// every call, so a lookup never finds an earlier entry and every call
// hashes the encoding afresh.
func (t *Trie) childRef(n node) []byte {
	if n == nil {
		return rlp.EncodeBytes(nil)
	}
	if v, ok := n.(valueNode); ok {
		return rlp.EncodeBytes(v)
	}
	enc := t.encode(n)
	if len(enc) < 32 {
		return enc
	}
	t.seq++
	key := seqKey(t.seq)
	if cached, ok := t.cache.HasGet(nil, key); ok {
		return rlp.EncodeBytes(cached)
	}
	h := t.hasher.Keccak256(enc)
	t.cache.Set(key, h[:])
	return rlp.EncodeBytes(h[:])
}

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(seq >> (8 * i))
	}
	return b
}

// keybytesToHex splits key into nibbles and appends the trie
// terminator nibble (16).
func keybytesToHex(key []byte) []byte {
	l := len(key)*2 + 1
	nibbles := make([]byte, l)
	for i, b := range key {
		nibbles[i*2] = b / 16
		nibbles[i*2+1] = b % 16
	}
	nibbles[l-1] = 16
	return nibbles
}

// hexToCompact re-packs hex nibbles (with optional terminator) into the
// compact "hex-prefix" encoding used on the wire, per the Yellow Paper.
func hexToCompact(hex []byte) []byte {
	terminator := byte(0)
	if len(hex) > 0 && hex[len(hex)-1] == 16 {
		terminator = 1
		hex = hex[:len(hex)-1]
	}
	buf := make([]byte, len(hex)/2+1)
	if len(hex)&1 == 1 {
		buf[0] = 0x10 + hex[0]
		hex = hex[1:]
	}
	buf[0] += terminator << 5
	for i, c := range hex {
		if i%2 == 0 {
			buf[i/2+1] = c << 4
		} else {
			buf[i/2+1] |= c
		}
	}
	return buf
}

func prefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
