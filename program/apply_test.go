// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypercounter/consts"
	"github.com/ava-labs/hypercounter/instructions"
	"github.com/ava-labs/hypercounter/storage"
)

func newRegion(t *testing.T, counter uint32) []byte {
	region := make([]byte, storage.CounterLen)
	require.NoError(t, storage.EncodeCounter(counter, region))
	return region
}

func counterOf(t *testing.T, region []byte) uint32 {
	v, err := storage.DecodeCounter(region)
	require.NoError(t, err)
	return v
}

// go test -v -run ^TestCounterScenario$ github.com/ava-labs/hypercounter/program
func TestCounterScenario(t *testing.T) {
	require := require.New(t)
	region := make([]byte, storage.CounterLen)

	require.NoError(Apply(region, []byte{0, 1, 0, 0, 0}))
	require.Equal(uint32(1), counterOf(t, region))

	require.NoError(Apply(region, []byte{1, 1, 0, 0, 0}))
	require.Equal(uint32(0), counterOf(t, region))

	require.NoError(Apply(region, []byte{3, 33, 0, 0, 0}))
	require.Equal(uint32(33), counterOf(t, region))

	require.NoError(Apply(region, []byte{2}))
	require.Equal(uint32(0), counterOf(t, region))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		counter     uint32
		ins         instructions.Instruction
		expected    uint32
		expectedErr error
	}{
		{
			name:     "increment",
			counter:  10,
			ins:      &instructions.Increment{Value: 5},
			expected: 15,
		},
		{
			name:     "increment to max",
			counter:  consts.MaxUint32 - 1,
			ins:      &instructions.Increment{Value: 1},
			expected: consts.MaxUint32,
		},
		{
			name:        "increment overflow",
			counter:     consts.MaxUint32,
			ins:         &instructions.Increment{Value: 1},
			expectedErr: ErrArithmeticRange,
		},
		{
			name:        "increment overflow large",
			counter:     2,
			ins:         &instructions.Increment{Value: consts.MaxUint32},
			expectedErr: ErrArithmeticRange,
		},
		{
			name:     "decrement",
			counter:  10,
			ins:      &instructions.Decrement{Value: 4},
			expected: 6,
		},
		{
			name:     "decrement to zero",
			counter:  7,
			ins:      &instructions.Decrement{Value: 7},
			expected: 0,
		},
		{
			name:        "decrement underflow",
			counter:     0,
			ins:         &instructions.Decrement{Value: 1},
			expectedErr: ErrArithmeticRange,
		},
		{
			name:     "increment zero",
			counter:  3,
			ins:      &instructions.Increment{Value: 0},
			expected: 3,
		},
		{
			name:     "reset",
			counter:  99,
			ins:      &instructions.Reset{},
			expected: 0,
		},
		{
			name:     "update",
			counter:  99,
			ins:      &instructions.Update{Value: consts.MaxUint32},
			expected: consts.MaxUint32,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			region := newRegion(t, tt.counter)
			err := Apply(region, instructions.Marshal(tt.ins))
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				// a failed apply never writes
				require.Equal(tt.counter, counterOf(t, region))
				return
			}
			require.Equal(tt.expected, counterOf(t, region))
		})
	}
}

func TestApplyFailuresLeaveRegionUntouched(t *testing.T) {
	tests := []struct {
		name        string
		region      []byte
		data        []byte
		expectedErr error
	}{
		{
			name:        "unknown opcode",
			region:      []byte{5, 0, 0, 0},
			data:        []byte{4, 1, 0, 0, 0},
			expectedErr: instructions.ErrUnrecognizedInstruction,
		},
		{
			name:        "truncated increment",
			region:      []byte{5, 0, 0, 0},
			data:        []byte{0},
			expectedErr: instructions.ErrMalformedPayload,
		},
		{
			name:        "empty instruction",
			region:      []byte{5, 0, 0, 0},
			data:        nil,
			expectedErr: instructions.ErrMalformedPayload,
		},
		{
			name:        "short region",
			region:      []byte{5, 0, 0},
			data:        []byte{2},
			expectedErr: storage.ErrCorruptState,
		},
		{
			name:        "short region checked before instruction",
			region:      []byte{},
			data:        []byte{9},
			expectedErr: storage.ErrCorruptState,
		},
		{
			name:        "overflow",
			region:      []byte{0xff, 0xff, 0xff, 0xff, 0xaa},
			data:        []byte{0, 1, 0, 0, 0},
			expectedErr: ErrArithmeticRange,
		},
		{
			name:        "underflow",
			region:      []byte{0, 0, 0, 0},
			data:        []byte{1, 1, 0, 0, 0},
			expectedErr: ErrArithmeticRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			before := slices.Clone(tt.region)
			require.ErrorIs(Apply(tt.region, tt.data), tt.expectedErr)
			require.Equal(before, tt.region)
		})
	}
}

func TestApplyPreservesTrailingRegionBytes(t *testing.T) {
	require := require.New(t)

	region := []byte{1, 0, 0, 0, 0xde, 0xad}
	require.NoError(Apply(region, []byte{3, 0x21, 0, 0, 0, 0xff}))
	require.Equal([]byte{0x21, 0, 0, 0, 0xde, 0xad}, region)
}

func TestIdempotence(t *testing.T) {
	require := require.New(t)

	for _, data := range [][]byte{
		instructions.Marshal(&instructions.Reset{}),
		instructions.Marshal(&instructions.Update{Value: 42}),
	} {
		once := newRegion(t, 17)
		require.NoError(Apply(once, data))

		twice := newRegion(t, 17)
		require.NoError(Apply(twice, data))
		require.NoError(Apply(twice, data))

		require.Equal(once, twice)
	}
}

func TestOverflowGuard(t *testing.T) {
	require := require.New(t)

	region := newRegion(t, consts.MaxUint32)
	err := Apply(region, instructions.Marshal(&instructions.Increment{Value: 1}))
	require.ErrorIs(err, ErrArithmeticRange)
	require.Equal(consts.MaxUint32, counterOf(t, region))
}

func TestUnderflowGuard(t *testing.T) {
	require := require.New(t)

	region := newRegion(t, 0)
	err := Apply(region, instructions.Marshal(&instructions.Decrement{Value: 1}))
	require.ErrorIs(err, ErrArithmeticRange)
	require.Equal(uint32(0), counterOf(t, region))
}

func TestErrorCode(t *testing.T) {
	require := require.New(t)

	region := newRegion(t, 0)
	require.Equal(CodeOK, ErrorCode(Apply(region, []byte{2})))
	require.Equal(CodeUnrecognizedInstruction, ErrorCode(Apply(region, []byte{4})))
	require.Equal(CodeMalformedPayload, ErrorCode(Apply(region, []byte{0})))
	require.Equal(CodeCorruptState, ErrorCode(Apply(region[:2], []byte{2})))
	require.Equal(CodeArithmeticRange, ErrorCode(Apply(region, []byte{1, 1, 0, 0, 0})))
	require.Equal(CodeStorageTooSmall, ErrorCode(storage.EncodeCounter(1, nil)))
	require.Equal(CodeUnknown, ErrorCode(errTest))
	require.Equal("arithmetic_range", CodeName(CodeArithmeticRange))
	require.Equal("unknown", CodeName(CodeUnknown))
}
