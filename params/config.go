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

import "math/big"

// ChainConfig is the hardfork parameter table: a lookup from (hardfork
// name) to the block number or time at which it activates, plus an
// orthogonal, additive list of extra EIPs to enable regardless of
// hardfork.
//
// This avoids polymorphic fork subclasses: the interpreter is one
// shape; only this table varies.
type ChainConfig struct {
	ChainID *big.Int

	HomesteadBlock      *big.Int
	EIP150Block         *big.Int // Tangerine Whistle
	EIP158Block         *big.Int // Spurious Dragon
	ByzantiumBlock      *big.Int
	ConstantinopleBlock *big.Int
	PetersburgBlock     *big.Int
	IstanbulBlock       *big.Int
	BerlinBlock         *big.Int // EIP-2929/2930
	LondonBlock         *big.Int // EIP-3529/3198

	ShanghaiTime *uint64 // EIP-3855/3860 PUSH0 et al.
	CancunTime   *uint64 // EIP-1153/5656/4844

	// ExtraEIPs additionally activates EIPs not implied by a named fork.
	// core/vm applies each entry with EnableEIP when it builds its jump
	// table, and panics on a number EnableEIP has no activator for.
	ExtraEIPs []int
}

func isBlockActive(fork *big.Int, num *big.Int) bool {
	return fork != nil && num != nil && fork.Cmp(num) <= 0
}

func isTimeActive(fork *uint64, time uint64) bool {
	return fork != nil && *fork <= time
}

// Rules is a snapshot of which consensus rules are active at a given
// (blockNumber, time) pair, resolved once per call so hot-path checks
// are plain bool reads instead of repeated big.Int comparisons.
type Rules struct {
	ChainID                                                 *big.Int
	IsHomestead, IsEIP150, IsEIP158                          bool
	IsByzantium, IsConstantinople, IsPetersburg, IsIstanbul  bool
	IsBerlin, IsLondon                                       bool
	IsShanghai, IsCancun                                     bool
	ExtraEIPs                                                []int
}

// Rules computes the Rules in effect at the given block number and time.
func (c *ChainConfig) Rules(num *big.Int, time uint64) Rules {
	var chainID *big.Int
	if c.ChainID != nil {
		chainID = new(big.Int).Set(c.ChainID)
	} else {
		chainID = new(big.Int)
	}
	return Rules{
		ChainID:          chainID,
		IsHomestead:      isBlockActive(c.HomesteadBlock, num),
		IsEIP150:         isBlockActive(c.EIP150Block, num),
		IsEIP158:         isBlockActive(c.EIP158Block, num),
		IsByzantium:      isBlockActive(c.ByzantiumBlock, num),
		IsConstantinople: isBlockActive(c.ConstantinopleBlock, num),
		IsPetersburg:     isBlockActive(c.PetersburgBlock, num),
		IsIstanbul:       isBlockActive(c.IstanbulBlock, num),
		IsBerlin:         isBlockActive(c.BerlinBlock, num),
		IsLondon:         isBlockActive(c.LondonBlock, num),
		IsShanghai:       isTimeActive(c.ShanghaiTime, time),
		IsCancun:         isTimeActive(c.CancunTime, time),
		ExtraEIPs:        c.ExtraEIPs,
	}
}

// IsEIPActive reports whether eipNum is active under these rules, either
// because it is implied by a named fork or because it was requested via
// ExtraEIPs.
func (r Rules) IsEIPActive(eipNum int) bool {
	for _, e := range r.ExtraEIPs {
		if e == eipNum {
			return true
		}
	}
	switch eipNum {
	case 150:
		return r.IsEIP150
	case 158:
		return r.IsEIP158
	case 1283, 1884, 1344:
		return r.IsConstantinople || r.IsIstanbul
	case 2200:
		return r.IsIstanbul
	case 2929, 2930:
		return r.IsBerlin
	case 3529, 3198:
		return r.IsLondon
	case 3855, 3860:
		return r.IsShanghai
	case 1153, 5656, 6780:
		return r.IsCancun
	default:
		return false
	}
}

func big64(n uint64) *big.Int { return new(big.Int).SetUint64(n) }

// MainnetChainConfig is a representative fully-activated (post-Cancun)
// chain configuration, useful as a default for cmd/evm and for tests
// that want every gas-metering rule switched on.
var MainnetChainConfig = &ChainConfig{
	ChainID:             big.NewInt(1),
	HomesteadBlock:      big.NewInt(0),
	EIP150Block:         big.NewInt(0),
	EIP158Block:         big.NewInt(0),
	ByzantiumBlock:      big.NewInt(0),
	ConstantinopleBlock: big.NewInt(0),
	PetersburgBlock:     big.NewInt(0),
	IstanbulBlock:       big.NewInt(0),
	BerlinBlock:         big.NewInt(0),
	LondonBlock:         big.NewInt(0),
	ShanghaiTime:        new(uint64),
	CancunTime:          new(uint64),
}

// FrontierChainConfig activates nothing: the original 2015 ruleset, used
// by tests exercising the pre-Constantinople SSTORE metering path.
var FrontierChainConfig = &ChainConfig{ChainID: big.NewInt(1)}
