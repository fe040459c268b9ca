// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"errors"

	"github.com/ava-labs/hypercounter/instructions"
	"github.com/ava-labs/hypercounter/storage"
)

var (
	ErrArithmeticRange      = errors.New("arithmetic range error")
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")
	ErrAccountNotWritable   = errors.New("account not writable")
)

// Custom error codes reported to hosts and RPC clients.
const (
	CodeOK uint32 = iota
	CodeUnrecognizedInstruction
	CodeMalformedPayload
	CodeCorruptState
	CodeStorageTooSmall
	CodeArithmeticRange
	CodeNotEnoughAccountKeys
	CodeAccountNotWritable

	CodeUnknown = ^uint32(0)
)

// ErrorCode classifies [err] into one of the custom codes above.
func ErrorCode(err error) uint32 {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, instructions.ErrUnrecognizedInstruction):
		return CodeUnrecognizedInstruction
	case errors.Is(err, instructions.ErrMalformedPayload):
		return CodeMalformedPayload
	case errors.Is(err, storage.ErrCorruptState):
		return CodeCorruptState
	case errors.Is(err, storage.ErrStorageTooSmall):
		return CodeStorageTooSmall
	case errors.Is(err, ErrArithmeticRange):
		return CodeArithmeticRange
	case errors.Is(err, ErrNotEnoughAccountKeys):
		return CodeNotEnoughAccountKeys
	case errors.Is(err, ErrAccountNotWritable):
		return CodeAccountNotWritable
	default:
		return CodeUnknown
	}
}

// CodeName returns a short label for [code], used as a metric label.
func CodeName(code uint32) string {
	switch code {
	case CodeOK:
		return "ok"
	case CodeUnrecognizedInstruction:
		return "unrecognized_instruction"
	case CodeMalformedPayload:
		return "malformed_payload"
	case CodeCorruptState:
		return "corrupt_state"
	case CodeStorageTooSmall:
		return "storage_too_small"
	case CodeArithmeticRange:
		return "arithmetic_range"
	case CodeNotEnoughAccountKeys:
		return "not_enough_account_keys"
	case CodeAccountNotWritable:
		return "account_not_writable"
	default:
		return "unknown"
	}
}
