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

	"github.com/stretchr/testify/require"
)

func TestExecuteAdd(t *testing.T) {
	// PUSH1 2 PUSH1 3 ADD PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN
	code := []byte{
		0x60, 0x02,
		0x60, 0x03,
		0x01,
		0x60, 0x00,
		0x52,
		0x60, 0x20,
		0x60, 0x00,
		0xf3,
	}
	ret, _, err := Execute(code, nil, nil)
	require.NoError(t, err)
	require.Equal(t, byte(5), ret[31])
}

func TestExecuteRevert(t *testing.T) {
	// PUSH1 0 PUSH1 0 REVERT
	code := []byte{0x60, 0x00, 0x60, 0x00, 0xfd}
	_, _, err := Execute(code, nil, nil)
	require.Error(t, err)
}

func TestExecuteStop(t *testing.T) {
	code := []byte{0x00}
	ret, _, err := Execute(code, nil, nil)
	require.NoError(t, err)
	require.Nil(t, ret)
}

func TestCreateSimpleStorage(t *testing.T) {
	// initcode: PUSH1 1 PUSH1 0 SSTORE, then returns a 1-byte runtime body (STOP).
	initcode := []byte{
		0x60, 0x01,
		0x60, 0x00,
		0x55,
		0x60, 0x01, // size
		0x60, 0x11, // offset of runtime code below (17 bytes in)
		0x60, 0x00,
		0x39, // CODECOPY dst=0 offset=11 size=1
		0x60, 0x01,
		0x60, 0x00,
		0xf3,
		0x00, // runtime body: STOP
	}
	_, addr, _, err := Create(initcode, nil)
	require.NoError(t, err)
	require.NotEqual(t, addr, [20]byte{})
}
