// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package instructions

import (
	"fmt"

	"github.com/ava-labs/hypercounter/codec"
	"github.com/ava-labs/hypercounter/consts"
)

// Unpack decodes [data] into an instruction.
//
// Layout: [typeID byte][value uint32 LE]? where the value is present for
// increment, decrement and update. Only the prefix required by the type is
// read; trailing bytes are ignored.
func Unpack(data []byte) (Instruction, error) {
	if len(data) < consts.ByteLen {
		return nil, fmt.Errorf("%w: empty instruction", ErrMalformedPayload)
	}
	typeID, payload := data[0], data[consts.ByteLen:]
	switch typeID {
	case consts.IncrementID:
		v, err := unpackValue(typeID, payload)
		if err != nil {
			return nil, err
		}
		return &Increment{Value: v}, nil
	case consts.DecrementID:
		v, err := unpackValue(typeID, payload)
		if err != nil {
			return nil, err
		}
		return &Decrement{Value: v}, nil
	case consts.ResetID:
		return &Reset{}, nil
	case consts.UpdateID:
		v, err := unpackValue(typeID, payload)
		if err != nil {
			return nil, err
		}
		return &Update{Value: v}, nil
	default:
		return nil, fmt.Errorf("%w: type %d", ErrUnrecognizedInstruction, typeID)
	}
}

func unpackValue(typeID uint8, payload []byte) (uint32, error) {
	v, err := codec.UnpackUint32(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedPayload, Name(typeID), err)
	}
	return v, nil
}

// Marshal returns the shortest encoding of [ins].
func Marshal(ins Instruction) []byte {
	switch i := ins.(type) {
	case *Increment:
		return packValue(i.GetTypeID(), i.Value)
	case *Decrement:
		return packValue(i.GetTypeID(), i.Value)
	case *Reset:
		return []byte{i.GetTypeID()}
	case *Update:
		return packValue(i.GetTypeID(), i.Value)
	default:
		// Instruction cannot be implemented outside this package.
		panic(fmt.Sprintf("unexpected instruction %T", ins))
	}
}

func packValue(typeID uint8, v uint32) []byte {
	b := make([]byte, 0, consts.ByteLen+consts.Uint32Len)
	b = append(b, typeID)
	return append(b, codec.PackUint32(v)...)
}
