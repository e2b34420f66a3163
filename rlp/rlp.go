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

// Package rlp is a minimal Recursive Length Prefix encoder: a thin
// adapter the block validator and crypto packages use to get a
// concrete encoding, not a general-purpose RLP library. It supports
// exactly the shapes the core needs: byte
// strings, big.Int/uint64 integers, and nested lists of Encodable
// values — enough to serialise a transaction index, a header's uncle
// list, and CREATE's [sender, nonce] pair.
package rlp

import (
	"bytes"
	"fmt"
	"math/big"
)

// Encodable is satisfied by []byte, string, uint64, *big.Int, and
// []interface{} (a list whose elements are themselves Encodable).
type Encodable = interface{}

// EncodeToBytes returns the RLP encoding of val.
func EncodeToBytes(val Encodable) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, val); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBytes RLP-encodes a single byte string. It never errors.
func EncodeBytes(b []byte) []byte {
	var buf bytes.Buffer
	encodeBytes(&buf, b)
	return buf.Bytes()
}

// EncodeUint64 RLP-encodes an unsigned integer using its minimal
// big-endian representation (zero encodes to the empty string), per
// the RLP integer convention.
func EncodeUint64(i uint64) []byte {
	return EncodeBytes(new(big.Int).SetUint64(i).Bytes())
}

// EncodeList RLP-encodes a list of already-encoded items.
func EncodeList(items [][]byte) []byte {
	var body bytes.Buffer
	for _, it := range items {
		body.Write(it)
	}
	var buf bytes.Buffer
	encodeListHeader(&buf, body.Len())
	buf.Write(body.Bytes())
	return buf.Bytes()
}

func encode(buf *bytes.Buffer, val Encodable) error {
	switch v := val.(type) {
	case nil:
		encodeBytes(buf, nil)
	case []byte:
		encodeBytes(buf, v)
	case string:
		encodeBytes(buf, []byte(v))
	case uint64:
		encodeBytes(buf, new(big.Int).SetUint64(v).Bytes())
	case *big.Int:
		if v == nil || v.Sign() == 0 {
			encodeBytes(buf, nil)
		} else {
			encodeBytes(buf, v.Bytes())
		}
	case []interface{}:
		var body bytes.Buffer
		for _, item := range v {
			if err := encode(&body, item); err != nil {
				return err
			}
		}
		encodeListHeader(buf, body.Len())
		buf.Write(body.Bytes())
	default:
		return fmt.Errorf("rlp: unsupported type %T", val)
	}
	return nil
}

func encodeBytes(buf *bytes.Buffer, b []byte) {
	switch {
	case len(b) == 1 && b[0] < 0x80:
		buf.WriteByte(b[0])
	case len(b) < 56:
		buf.WriteByte(0x80 + byte(len(b)))
		buf.Write(b)
	default:
		writeLengthPrefixed(buf, 0xb7, len(b))
		buf.Write(b)
	}
}

func encodeListHeader(buf *bytes.Buffer, size int) {
	if size < 56 {
		buf.WriteByte(0xc0 + byte(size))
		return
	}
	writeLengthPrefixed(buf, 0xf7, size)
}

// writeLengthPrefixed writes the "long form" RLP header: a byte
// (base + length-of-length) followed by the big-endian length itself.
func writeLengthPrefixed(buf *bytes.Buffer, base byte, size int) {
	lenBytes := big.NewInt(int64(size)).Bytes()
	buf.WriteByte(base + byte(len(lenBytes)))
	buf.Write(lenBytes)
}
