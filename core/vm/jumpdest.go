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

import mapset "github.com/deckarep/golang-set/v2"

// validJumpSet is the set of code offsets a JUMP/JUMPI may legally
// target, computed once per Contract via a single linear scan that
// skips PUSH immediates so that a JUMPDEST byte embedded inside a
// PUSH's payload is never mistaken for a real destination.
type validJumpSet = mapset.Set[uint64]

// computeValidJumps performs that scan, returning every byte offset
// of a JUMPDEST opcode not itself sitting inside some earlier PUSH's
// immediate-data window.
//
// There is no matching computeValidJumpSubs / BEGINSUB-JUMPSUB-RETURNSUB
// family: EIP-2315 proposed those three opcodes at 0x5c/0x5d/0x5e, but it
// never activated on mainnet, and this jump table's Cancun additions
// (TLOAD, TSTORE, MCOPY, see opcodes.go and eips.go's enable1153/enable5656)
// occupy those same three byte values for opcodes that did activate.
// Adding subroutine support here would collide with opcodes this
// interpreter already dispatches, not just duplicate unused work.
func computeValidJumps(code []byte) validJumpSet {
	dests := mapset.NewThreadUnsafeSet[uint64]()
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			dests.Add(pc)
		} else if op.IsPush() {
			pc += uint64(op.PushSize())
		}
	}
	return dests
}
