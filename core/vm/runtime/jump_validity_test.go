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
	"errors"
	"testing"

	"github.com/evmforge/evmcore/core/vm"
)

// jumpDestAt257 is PUSH1 0xff, JUMP, filler STOPs, then a real
// JUMPDEST sitting at offset 0xff followed by STOP: the jump lands on
// a genuine destination.
func jumpDestAt257() []byte {
	code := make([]byte, 257)
	code[0] = 0x60 // PUSH1
	code[1] = 0xff
	code[2] = 0x56 // JUMP
	code[255] = 0x5b // JUMPDEST
	code[256] = 0x00 // STOP
	return code
}

// jumpDestCoveredByPush258 is the same PUSH1 0xff, JUMP pair, but the
// byte at offset 0xff is no longer a real JUMPDEST: it's the first
// immediate byte of a PUSH2 sitting at offset 0xfe, so the jump-dest
// scan must skip over it.
func jumpDestCoveredByPush258() []byte {
	code := make([]byte, 258)
	code[0] = 0x60 // PUSH1
	code[1] = 0xff
	code[2] = 0x56 // JUMP
	code[254] = 0x61 // PUSH2
	code[255] = 0x5b // immediate data byte, value coincides with JUMPDEST
	code[256] = 0x00 // immediate data byte
	code[257] = 0x00 // STOP
	return code
}

// TestJumpToRealJumpdestSucceeds is the positive case: jumping to a
// genuine JUMPDEST lands cleanly.
func TestJumpToRealJumpdestSucceeds(t *testing.T) {
	_, _, err := Execute(jumpDestAt257(), nil, nil)
	if err != nil {
		t.Fatalf("JUMP to a real JUMPDEST failed: %v", err)
	}
}

// TestJumpToPushImmediateCoveredByteTrapsInvalidJump is the negative
// case: a 0x5b byte sitting inside a PUSH's immediate data is never a
// legal jump target.
func TestJumpToPushImmediateCoveredByteTrapsInvalidJump(t *testing.T) {
	_, _, err := Execute(jumpDestCoveredByPush258(), nil, nil)
	if !errors.Is(err, vm.ErrInvalidJump) {
		t.Fatalf("JUMP to a PUSH-immediate-covered byte = %v, want ErrInvalidJump", err)
	}
}
