// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypercounter/consts"
)

func TestUint32LittleEndian(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0x21, 0, 0, 0}, PackUint32(33))
	require.Equal([]byte{0x78, 0x56, 0x34, 0x12}, PackUint32(0x12345678))
	require.Equal([]byte{0xff, 0xff, 0xff, 0xff}, PackUint32(consts.MaxUint32))

	v, err := UnpackUint32([]byte{0x78, 0x56, 0x34, 0x12})
	require.NoError(err)
	require.Equal(uint32(0x12345678), v)
}

func TestUnpackUint32IgnoresTrailingBytes(t *testing.T) {
	require := require.New(t)

	v, err := UnpackUint32([]byte{1, 0, 0, 0, 0xff, 0xff})
	require.NoError(err)
	require.Equal(uint32(1), v)
}

func TestUnpackUint32Short(t *testing.T) {
	for _, b := range [][]byte{nil, {}, {1}, {1, 2, 3}} {
		_, err := UnpackUint32(b)
		require.ErrorIs(t, err, ErrInsufficientLength)
	}
}

func TestLoadHex(t *testing.T) {
	require := require.New(t)

	b, err := LoadHex("0x0001000000", -1)
	require.NoError(err)
	require.Equal([]byte{0, 1, 0, 0, 0}, b)

	b, err = LoadHex("02", 1)
	require.NoError(err)
	require.Equal([]byte{2}, b)

	_, err = LoadHex("0203", 1)
	require.ErrorIs(err, ErrInvalidSize)

	_, err = LoadHex("zz", -1)
	require.Error(err)
}

func TestBytesText(t *testing.T) {
	require := require.New(t)

	text, err := Bytes{3, 33, 0, 0, 0}.MarshalText()
	require.NoError(err)
	require.Equal("0x0321000000", string(text))

	var b Bytes
	require.NoError(b.UnmarshalText(text))
	require.Equal(Bytes{3, 33, 0, 0, 0}, b)
}
