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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadChainConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devnet.yaml")
	contents := `
chainId: 1337
homesteadBlock: 0
eip150Block: 0
eip158Block: 0
byzantiumBlock: 0
constantinopleBlock: 0
petersburgBlock: 0
istanbulBlock: 0
berlinBlock: 0
londonBlock: 10
shanghaiTime: 1000
extraEIPs: [2537]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadChainConfigYAML(path)
	require.NoError(t, err)
	require.Equal(t, uint64(1337), cfg.ChainID.Uint64())
	require.Equal(t, uint64(10), cfg.LondonBlock.Uint64())
	require.Nil(t, cfg.CancunTime)
	require.Equal(t, []int{2537}, cfg.ExtraEIPs)

	rules := cfg.Rules(big64(5), 0)
	require.True(t, rules.IsBerlin)
	require.False(t, rules.IsLondon)

	rules = cfg.Rules(big64(10), 1000)
	require.True(t, rules.IsLondon)
	require.True(t, rules.IsShanghai)
	require.True(t, rules.IsEIPActive(2537))
}

func TestLoadChainConfigYAML_MissingFile(t *testing.T) {
	_, err := LoadChainConfigYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
