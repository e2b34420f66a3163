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
	"os"

	"github.com/naoina/toml"
)

// GasPriceOverrides is a named gasPrices param group an operator can
// supply on disk to tweak a handful of constants without recompiling —
// e.g. to reproduce a devnet that shipped with a non-standard SSTORE
// sentry value.
type GasPriceOverrides struct {
	GasPrices map[string]uint64 `toml:"gasPrices"`
}

// LoadOverrides reads a TOML file of gas-price overrides. A missing
// file is not an error: callers treat it as "no overrides".
func LoadOverrides(path string) (*GasPriceOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GasPriceOverrides{GasPrices: map[string]uint64{}}, nil
		}
		return nil, err
	}
	var out GasPriceOverrides
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out.GasPrices == nil {
		out.GasPrices = map[string]uint64{}
	}
	return &out, nil
}

// Apply looks up name in the override table, falling back to def when
// absent.
func (o *GasPriceOverrides) Apply(name string, def uint64) uint64 {
	if o == nil {
		return def
	}
	if v, ok := o.GasPrices[name]; ok {
		return v
	}
	return def
}
