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
	"math/big"
	"testing"

	"github.com/evmforge/evmcore/core/vm"
	"github.com/evmforge/evmcore/params"
)

// istanbulOnlyChainConfig activates exactly Istanbul: no Berlin, so
// SSTORE dispatches through gasSStoreEIP2200 rather than its
// EIP-2929-wrapped successor.
var istanbulOnlyChainConfig = &params.ChainConfig{
	ChainID:       big.NewInt(1),
	IstanbulBlock: big.NewInt(0),
}

// TestSstoreSentryGasTrapsBeforeMetering exercises the Istanbul sentry
// check: with exactly sstoreSentryGasEIP2200 left when SSTORE dispatches,
// the call traps OUT_OF_GAS before any of EIP-1283's net-metering rules
// run, even though the write itself (0 -> 1) would otherwise be cheap.
func TestSstoreSentryGasTrapsBeforeMetering(t *testing.T) {
	// PUSH1 1 PUSH1 0 SSTORE: 3 + 3 gas before SSTORE's own dynamic cost
	// is computed, so gasLimit = sentry + 6 leaves exactly the sentry
	// amount once SSTORE's dynamicGas runs.
	code := []byte{0x60, 0x01, 0x60, 0x00, 0x55}
	gasLimit := params.SstoreSentryGasEIP2200 + 6

	cfg := &Config{ChainConfig: istanbulOnlyChainConfig, GasLimit: gasLimit}
	_, _, err := Execute(code, nil, cfg)
	if !errors.Is(err, vm.ErrOutOfGas) {
		t.Fatalf("Execute() with gasLeft == sstoreSentryGasEIP2200 = %v, want ErrOutOfGas", err)
	}
}

// TestSstoreAboveSentryGasSucceeds is the control: with ample gas past
// the sentry threshold, the same write goes through.
func TestSstoreAboveSentryGasSucceeds(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x00, 0x55, 0x00} // ...; STOP
	cfg := &Config{ChainConfig: istanbulOnlyChainConfig, GasLimit: 100_000}
	_, _, err := Execute(code, nil, cfg)
	if err != nil {
		t.Fatalf("Execute() with ample gas above the sentry threshold failed: %v", err)
	}
}
