// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan     = errors.New("invalid plan")
	ErrInvalidStep     = errors.New("invalid step")
	ErrUnknownAccount  = errors.New("unknown account")
	ErrAssertionFailed = errors.New("assertion failed")
	ErrInvalidArgs     = errors.New("invalid arguments")
)
