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

package runtime

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"

	"github.com/evmforge/evmcore/core/vm"
)

// arithOpcodes are the binary ops safe to emit once two Words are on
// the stack: each pops two, pushes one, so stack depth always nets to
// the same shape regardless of which one is chosen.
var arithOpcodes = []byte{0x01, 0x02, 0x03, 0x04, 0x06} // ADD, MUL, SUB, DIV, MOD

// genValidCode turns a slice of random control bytes into a bounded,
// always-valid arithmetic program: a guarded random walk that only
// ever emits a PUSH1 when the stack needs priming and an arithmetic op
// once two values are available, terminated by STOP. Every byte
// sequence this produces dispatches cleanly; there is no jump, call,
// or memory op to go out of bounds on.
func genValidCode(seed []byte) []byte {
	code := make([]byte, 0, len(seed)*2+1)
	depth := 0
	for _, b := range seed {
		if depth < 2 || b%2 == 0 {
			code = append(code, 0x60, b) // PUSH1 b
			depth++
			continue
		}
		code = append(code, arithOpcodes[int(b)%len(arithOpcodes)])
		depth--
	}
	return append(code, 0x00) // STOP
}

// TestGasMonotonicityAcrossRandomOpcodeSequences fuzzes the control
// bytes driving genValidCode and checks that the gas balance observed
// at each step (via OnStep, fired before that step's charge) never
// increases, for a spread of randomly generated valid programs.
func TestGasMonotonicityAcrossRandomOpcodeSequences(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 64; i++ {
		var seed [32]byte
		f.Fuzz(&seed)
		code := genValidCode(seed[:])

		var gasTrace []uint64
		cfg := &Config{
			GasLimit: 10_000_000,
			OnStep: func(ev vm.StepEvent) error {
				gasTrace = append(gasTrace, ev.Gas)
				return nil
			},
		}

		if _, _, err := Execute(code, nil, cfg); err != nil {
			t.Fatalf("generated program failed to execute: %v\ncode=%x\n%s", err, code, spew.Sdump(seed))
		}
		for j := 1; j < len(gasTrace); j++ {
			if gasTrace[j] > gasTrace[j-1] {
				t.Fatalf("gas increased at step %d: %d -> %d\ncode=%x\n%s",
					j, gasTrace[j-1], gasTrace[j], code, spew.Sdump(gasTrace))
			}
		}
	}
}
