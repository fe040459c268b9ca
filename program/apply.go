// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/ava-labs/hypercounter/instructions"
	"github.com/ava-labs/hypercounter/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Apply decodes the counter held in [region], applies the instruction encoded
// in [data] and writes the result back into [region].
//
// [region] is only written once every step before the write has succeeded, so
// any returned error leaves it unmodified. Apply holds no state; callers must
// not invoke it concurrently on the same region.
func Apply(region []byte, data []byte) error {
	_, _, err := apply(region, data)
	return err
}

func apply(region []byte, data []byte) (instructions.Instruction, uint32, error) {
	counter, err := storage.DecodeCounter(region)
	if err != nil {
		return nil, 0, err
	}
	ins, err := instructions.Unpack(data)
	if err != nil {
		return nil, 0, err
	}
	next, err := Transition(counter, ins)
	if err != nil {
		return ins, 0, err
	}
	if err := storage.EncodeCounter(next, region); err != nil {
		return ins, 0, err
	}
	return ins, next, nil
}

// Transition returns the counter that results from applying [ins] to
// [counter]. Increment and decrement are checked: leaving the uint32 range
// returns [ErrArithmeticRange].
func Transition(counter uint32, ins instructions.Instruction) (uint32, error) {
	switch i := ins.(type) {
	case *instructions.Increment:
		next, err := smath.Add(counter, i.Value)
		if err != nil {
			return 0, fmt.Errorf("%w: %d + %d: %w", ErrArithmeticRange, counter, i.Value, err)
		}
		return next, nil
	case *instructions.Decrement:
		next, err := smath.Sub(counter, i.Value)
		if err != nil {
			return 0, fmt.Errorf("%w: %d - %d: %w", ErrArithmeticRange, counter, i.Value, err)
		}
		return next, nil
	case *instructions.Reset:
		return 0, nil
	case *instructions.Update:
		return i.Value, nil
	default:
		return 0, fmt.Errorf("%w: %T", instructions.ErrUnrecognizedInstruction, ins)
	}
}
