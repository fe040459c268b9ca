// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "errors"

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidAccountSize = errors.New("invalid account size")
)
