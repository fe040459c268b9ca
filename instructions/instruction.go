// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package instructions

import (
	"fmt"

	"github.com/ava-labs/hypercounter/consts"
)

// Instruction is one of [*Increment], [*Decrement], [*Reset] or [*Update].
// The set is closed: the only way to obtain an Instruction from bytes is
// [Unpack].
type Instruction interface {
	fmt.Stringer

	GetTypeID() uint8
	isInstruction()
}

var (
	_ Instruction = (*Increment)(nil)
	_ Instruction = (*Decrement)(nil)
	_ Instruction = (*Reset)(nil)
	_ Instruction = (*Update)(nil)
)

type Increment struct {
	// Value is added to the counter.
	Value uint32 `json:"value"`
}

func (*Increment) GetTypeID() uint8 {
	return consts.IncrementID
}

func (i *Increment) String() string {
	return fmt.Sprintf("increment(%d)", i.Value)
}

func (*Increment) isInstruction() {}

type Decrement struct {
	// Value is subtracted from the counter.
	Value uint32 `json:"value"`
}

func (*Decrement) GetTypeID() uint8 {
	return consts.DecrementID
}

func (d *Decrement) String() string {
	return fmt.Sprintf("decrement(%d)", d.Value)
}

func (*Decrement) isInstruction() {}

type Reset struct{}

func (*Reset) GetTypeID() uint8 {
	return consts.ResetID
}

func (*Reset) String() string {
	return "reset"
}

func (*Reset) isInstruction() {}

type Update struct {
	// Value replaces the counter.
	Value uint32 `json:"value"`
}

func (*Update) GetTypeID() uint8 {
	return consts.UpdateID
}

func (u *Update) String() string {
	return fmt.Sprintf("update(%d)", u.Value)
}

func (*Update) isInstruction() {}

// Name returns the lower-case name of the instruction with [typeID], or
// "unknown".
func Name(typeID uint8) string {
	switch typeID {
	case consts.IncrementID:
		return "increment"
	case consts.DecrementID:
		return "decrement"
	case consts.ResetID:
		return "reset"
	case consts.UpdateID:
		return "update"
	default:
		return "unknown"
	}
}

// New builds an instruction from its name. [value] is ignored for reset.
func New(name string, value uint32) (Instruction, error) {
	switch name {
	case "increment":
		return &Increment{Value: value}, nil
	case "decrement":
		return &Decrement{Value: value}, nil
	case "reset":
		return &Reset{}, nil
	case "update":
		return &Update{Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
}
