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
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
)

// wordMod is 2**256, the modulus every Word op implicitly wraps at.
var wordMod = new(big.Int).Lsh(big.NewInt(1), 256)

// TestWordAddIsTotalAndWraps fuzzes random 256-bit pairs and checks that
// ADD never panics and always agrees with unbounded addition taken
// modulo 2**256, the wraparound invariant every opcode relies on.
func TestWordAddIsTotalAndWraps(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 256; i++ {
		var ab, bb [32]byte
		f.Fuzz(&ab)
		f.Fuzz(&bb)

		a := new(uint256.Int).SetBytes(ab[:])
		b := new(uint256.Int).SetBytes(bb[:])
		got := new(uint256.Int).Add(a, b)

		want := new(big.Int).Add(a.ToBig(), b.ToBig())
		want.Mod(want, wordMod)

		if got.ToBig().Cmp(want) != 0 {
			t.Fatalf("ADD(a,b) != a+b mod 2^256; got %s want %s\n%s", got, want, spew.Sdump(a, b))
		}
	}
}

// TestWordDivModByZeroIsTotal checks the EVM's defined-everywhere
// convention that DIV(a,0) = MOD(a,0) = 0, never a panic or a
// divide-by-zero trap, for a fuzzed spread of dividends.
func TestWordDivModByZeroIsTotal(t *testing.T) {
	f := fuzz.New().NilChance(0)
	zero := new(uint256.Int)
	for i := 0; i < 256; i++ {
		var ab [32]byte
		f.Fuzz(&ab)
		a := new(uint256.Int).SetBytes(ab[:])

		div := new(uint256.Int).Div(a, zero)
		mod := new(uint256.Int).Mod(a, zero)
		if !div.IsZero() || !mod.IsZero() {
			t.Fatalf("DIV/MOD by zero not total for dividend %s: div=%s mod=%s\n%s", a, div, mod, spew.Sdump(a))
		}
	}
}

// TestWordSignedDivByZeroIsTotal is the SDIV analogue: signed division
// by zero is defined as zero, same as its unsigned counterpart.
func TestWordSignedDivByZeroIsTotal(t *testing.T) {
	f := fuzz.New().NilChance(0)
	zero := new(uint256.Int)
	for i := 0; i < 256; i++ {
		var ab [32]byte
		f.Fuzz(&ab)
		a := new(uint256.Int).SetBytes(ab[:])

		got := new(uint256.Int).SDiv(a, zero)
		if !got.IsZero() {
			t.Fatalf("SDIV by zero not total for dividend %s: got %s\n%s", a, got, spew.Sdump(a))
		}
	}
}
