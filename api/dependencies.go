// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
)

// Host is the execution environment served over the API.
type Host interface {
	Tracer() trace.Tracer
	Logger() logging.Logger
	CreateAccount(ctx context.Context, id ids.ID, size int) error
	Invoke(ctx context.Context, id ids.ID, data []byte) (uint32, error)
	Counter(ctx context.Context, id ids.ID) (uint32, error)
	CloseAccount(ctx context.Context, id ids.ID) error
}
