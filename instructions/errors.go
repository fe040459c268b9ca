// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package instructions

import "errors"

var (
	ErrUnrecognizedInstruction = errors.New("unrecognized instruction")
	ErrMalformedPayload        = errors.New("malformed payload")
	ErrUnknownName             = errors.New("unknown instruction name")
)
