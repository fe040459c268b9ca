// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Name = "hypercounter"

	// Instruction discriminants
	IncrementID uint8 = 0
	DecrementID uint8 = 1
	ResetID     uint8 = 2
	UpdateID    uint8 = 3
)
