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

package params

const (
	// Fixed-cost opcode steps, per the Yellow Paper's W_zero..W_high groups.
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	// Memory expansion.
	MemoryGas        uint64 = 3 // Cmem
	QuadCoeffDiv     uint64 = 512
	CopyGas          uint64 = 3

	// Call/create plumbing.
	CallCreateDepth       uint64 = 1024
	CallStipend           uint64 = 2300
	CallGasEIP150         uint64 = 700
	CallValueTransferGas  uint64 = 9000
	CallNewAccountGas     uint64 = 25000
	CreateGas             uint64 = 32000
	Create2Gas            uint64 = 32000
	CreateDataGas         uint64 = 200
	InitCodeWordGas       uint64 = 2
	MaxCodeSize           int    = 24576
	MaxInitCodeSize       int    = 2 * MaxCodeSize

	// EXP.
	ExpGas            uint64 = 10
	ExpByteGasFrontier uint64 = 10
	ExpByteGasEIP158   uint64 = 50

	// Legacy (pre-Constantinople) SSTORE.
	SstoreSetGas   uint64 = 20000
	SstoreResetGas uint64 = 5000
	SstoreClearRefund uint64 = 15000
	SstoreRefundGas   uint64 = 15000 // alias kept for readability at call sites

	// EIP-1283 net-metered SSTORE (Constantinople).
	NetSstoreNoopGas        uint64 = 200
	NetSstoreInitGas        uint64 = 20000
	NetSstoreCleanGas       uint64 = 5000
	NetSstoreDirtyGas       uint64 = 200
	NetSstoreClearRefund    uint64 = 15000
	NetSstoreResetRefund    uint64 = 4800
	NetSstoreResetClearRefund uint64 = 19800

	// EIP-2200 (Istanbul) reuses the EIP-1283 structure with this sentry.
	SstoreSentryGasEIP2200 uint64 = 2300

	// EIP-2929 access-list gas (Berlin).
	ColdAccountAccessCostEIP2929 uint64 = 2600
	ColdSloadCostEIP2929         uint64 = 2100
	WarmStorageReadCostEIP2929   uint64 = 100

	// EIP-2929's SSTORE reuses EIP-1283's structure, billing the cold
	// surcharge once up front.
	SstoreSentryGasEIP2929 uint64 = 2300

	// EIP-3529 (London) shrinks refunds.
	SstoreClearsScheduleRefundEIP3529 uint64 = NetSstoreResetClearRefund - ColdSloadCostEIP2929
	MaxRefundQuotient                uint64 = 5 // refund capped at gasUsed/5 post-London (was /2)
	MaxRefundQuotientPreLondon       uint64 = 2

	// Hardfork gas-price deltas referenced directly by eips.go.
	SloadGasEIP1884        uint64 = 800
	BalanceGasEIP1884      uint64 = 700
	ExtcodeHashGasEIP1884  uint64 = 700
	SloadGasEIP150         uint64 = 200
	SloadGasEIP2200        uint64 = 800
	SelfdestructGasEIP150  uint64 = 5000

	// EIP-3860 initcode metering (Shanghai).
	InitCodeWordGasEIP3860 uint64 = 2

	// Stack depth limit.
	StackLimit int = 1024

	// InitialBaseFee is the default EIP-1559 base fee runtime harnesses
	// fall back to when a block doesn't specify one.
	InitialBaseFee uint64 = 1000000000
)
