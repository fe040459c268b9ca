// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrCorruptState     = errors.New("corrupt state")
	ErrStorageTooSmall  = errors.New("storage too small")
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidAccountID = errors.New("invalid account id")
)
