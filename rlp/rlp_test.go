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

package rlp

import (
	"bytes"
	"math/big"
	"testing"
)

func TestEncodeBytesSingleByte(t *testing.T) {
	got := EncodeBytes([]byte{0x01})
	want := []byte{0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBytes([0x01]) = %x, want %x", got, want)
	}
}

func TestEncodeBytesEmpty(t *testing.T) {
	got := EncodeBytes(nil)
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBytes(nil) = %x, want %x", got, want)
	}
}

func TestEncodeBytesShortString(t *testing.T) {
	got := EncodeBytes([]byte("dog"))
	want := []byte{0x83, 'd', 'o', 'g'}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBytes(\"dog\") = %x, want %x", got, want)
	}
}

func TestEncodeBytesLongString(t *testing.T) {
	data := bytes.Repeat([]byte{0x61}, 56)
	got := EncodeBytes(data)
	if got[0] != 0xb8 || got[1] != 56 {
		t.Errorf("EncodeBytes of a 56-byte string should use the long form, got header %x", got[:2])
	}
}

func TestEncodeUint64(t *testing.T) {
	if got := EncodeUint64(0); !bytes.Equal(got, []byte{0x80}) {
		t.Errorf("EncodeUint64(0) = %x, want 0x80", got)
	}
	if got := EncodeUint64(1); !bytes.Equal(got, []byte{0x01}) {
		t.Errorf("EncodeUint64(1) = %x, want 0x01", got)
	}
	if got := EncodeUint64(1024); !bytes.Equal(got, []byte{0x82, 0x04, 0x00}) {
		t.Errorf("EncodeUint64(1024) = %x, want 820400", got)
	}
}

func TestEncodeList(t *testing.T) {
	items := [][]byte{EncodeBytes([]byte("cat")), EncodeBytes([]byte("dog"))}
	got := EncodeList(items)
	want := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeList = %x, want %x", got, want)
	}
}

func TestEncodeListEmpty(t *testing.T) {
	got := EncodeList(nil)
	want := []byte{0xc0}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeList(nil) = %x, want %x", got, want)
	}
}

func TestEncodeToBytesBigIntZeroIsEmptyString(t *testing.T) {
	got, err := EncodeToBytes(big.NewInt(0))
	if err != nil {
		t.Fatalf("EncodeToBytes(0): %v", err)
	}
	if !bytes.Equal(got, []byte{0x80}) {
		t.Errorf("EncodeToBytes(big.NewInt(0)) = %x, want 0x80", got)
	}
}

func TestEncodeToBytesNestedList(t *testing.T) {
	got, err := EncodeToBytes([]interface{}{[]byte("a"), []interface{}{[]byte("b")}})
	if err != nil {
		t.Fatalf("EncodeToBytes nested list: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected non-empty encoding")
	}
}

func TestEncodeToBytesUnsupportedType(t *testing.T) {
	if _, err := EncodeToBytes(3.14); err == nil {
		t.Fatal("expected an error encoding an unsupported type")
	}
}
