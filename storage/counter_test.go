// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypercounter/consts"
)

func TestDecodeCounter(t *testing.T) {
	tests := []struct {
		name        string
		region      []byte
		expected    uint32
		expectedErr error
	}{
		{
			name:     "zero filled",
			region:   make([]byte, CounterLen),
			expected: 0,
		},
		{
			name:     "little endian",
			region:   []byte{0x21, 0, 0, 0},
			expected: 33,
		},
		{
			name:     "max",
			region:   []byte{0xff, 0xff, 0xff, 0xff},
			expected: consts.MaxUint32,
		},
		{
			name:     "larger region",
			region:   []byte{1, 0, 0, 0, 0xaa, 0xbb},
			expected: 1,
		},
		{
			name:        "short region",
			region:      []byte{1, 0, 0},
			expectedErr: ErrCorruptState,
		},
		{
			name:        "empty region",
			region:      nil,
			expectedErr: ErrCorruptState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			v, err := DecodeCounter(tt.region)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, v)
		})
	}
}

func TestEncodeCounter(t *testing.T) {
	require := require.New(t)

	region := []byte{9, 9, 9, 9, 0xaa, 0xbb}
	require.NoError(EncodeCounter(0x01020304, region))
	require.Equal([]byte{4, 3, 2, 1, 0xaa, 0xbb}, region)

	short := []byte{7, 7, 7}
	require.ErrorIs(EncodeCounter(1, short), ErrStorageTooSmall)
	require.Equal([]byte{7, 7, 7}, short)
}

func TestCounterRoundTrip(t *testing.T) {
	require := require.New(t)

	region := make([]byte, CounterLen)
	for _, v := range []uint32{0, 1, 33, 255, 256, 1 << 16, 1<<31 + 7, consts.MaxUint32 - 1, consts.MaxUint32} {
		require.NoError(EncodeCounter(v, region))
		decoded, err := DecodeCounter(region)
		require.NoError(err)
		require.Equal(v, decoded)
	}
}
