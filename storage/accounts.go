// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypercounter/consts"
	"github.com/ava-labs/hypercounter/state"
)

// [accountPrefix] + [id]
func AccountKey(id ids.ID) []byte {
	k := make([]byte, consts.ByteLen+consts.IDLen)
	k[0] = accountPrefix
	copy(k[1:], id[:])
	return k
}

// ParseAccountKey is the inverse of [AccountKey].
func ParseAccountKey(k []byte) (ids.ID, error) {
	if len(k) != consts.ByteLen+consts.IDLen || k[0] != accountPrefix {
		return ids.Empty, fmt.Errorf("%w: key length %d", ErrInvalidAccountID, len(k))
	}
	return ids.ToID(k[1:])
}

// GetAccountData returns the region stored for [id], or [ErrAccountNotFound].
func GetAccountData(ctx context.Context, im state.Immutable, id ids.ID) ([]byte, error) {
	v, err := im.GetValue(ctx, AccountKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// HasAccount reports whether a region is stored for [id].
func HasAccount(ctx context.Context, im state.Immutable, id ids.ID) (bool, error) {
	_, err := im.GetValue(ctx, AccountKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func SetAccountData(ctx context.Context, mu state.Mutable, id ids.ID, data []byte) error {
	return mu.Insert(ctx, AccountKey(id), data)
}

func DeleteAccount(ctx context.Context, mu state.Mutable, id ids.ID) error {
	return mu.Remove(ctx, AccountKey(id))
}

// GetCounter decodes the counter held by account [id].
func GetCounter(ctx context.Context, im state.Immutable, id ids.ID) (uint32, error) {
	data, err := GetAccountData(ctx, im, id)
	if err != nil {
		return 0, err
	}
	return DecodeCounter(data)
}
