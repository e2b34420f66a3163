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

import (
	"math/big"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlChainConfig is the on-disk shape of a chain config file: fork
// activation blocks/times as plain uint64s, which YAML marshals far
// more readably than ChainConfig's *big.Int fields.
type yamlChainConfig struct {
	ChainID uint64 `yaml:"chainId"`

	HomesteadBlock      *uint64 `yaml:"homesteadBlock"`
	EIP150Block         *uint64 `yaml:"eip150Block"`
	EIP158Block         *uint64 `yaml:"eip158Block"`
	ByzantiumBlock      *uint64 `yaml:"byzantiumBlock"`
	ConstantinopleBlock *uint64 `yaml:"constantinopleBlock"`
	PetersburgBlock     *uint64 `yaml:"petersburgBlock"`
	IstanbulBlock       *uint64 `yaml:"istanbulBlock"`
	BerlinBlock         *uint64 `yaml:"berlinBlock"`
	LondonBlock         *uint64 `yaml:"londonBlock"`

	ShanghaiTime *uint64 `yaml:"shanghaiTime"`
	CancunTime   *uint64 `yaml:"cancunTime"`

	ExtraEIPs []int `yaml:"extraEIPs"`
}

// LoadChainConfigYAML reads a named-network chain config from a YAML file,
// the format an operator hand-edits to describe a devnet's fork schedule
// (the gas-price-only GasPriceOverrides in toml.go covers a narrower,
// TOML-shaped override case).
func LoadChainConfigYAML(path string) (*ChainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var y yamlChainConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, err
	}
	return &ChainConfig{
		ChainID:             new(big.Int).SetUint64(y.ChainID),
		HomesteadBlock:      big64Ptr(y.HomesteadBlock),
		EIP150Block:         big64Ptr(y.EIP150Block),
		EIP158Block:         big64Ptr(y.EIP158Block),
		ByzantiumBlock:      big64Ptr(y.ByzantiumBlock),
		ConstantinopleBlock: big64Ptr(y.ConstantinopleBlock),
		PetersburgBlock:     big64Ptr(y.PetersburgBlock),
		IstanbulBlock:       big64Ptr(y.IstanbulBlock),
		BerlinBlock:         big64Ptr(y.BerlinBlock),
		LondonBlock:         big64Ptr(y.LondonBlock),
		ShanghaiTime:        y.ShanghaiTime,
		CancunTime:          y.CancunTime,
		ExtraEIPs:           y.ExtraEIPs,
	}, nil
}

func big64Ptr(n *uint64) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).SetUint64(*n)
}
