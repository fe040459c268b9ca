// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"

	"github.com/near/borsh-go"
)

// CounterAccount is the persisted layout of an account region. It is borsh
// encoded: 4 bytes little-endian, no length prefix, no padding.
type CounterAccount struct {
	Counter uint32 `json:"counter"`
}

// DecodeCounter reads the counter from the first [CounterLen] bytes of
// [region]. A zero-filled region decodes to 0.
func DecodeCounter(region []byte) (uint32, error) {
	if len(region) < CounterLen {
		return 0, fmt.Errorf("%w: region has %d bytes, need %d", ErrCorruptState, len(region), CounterLen)
	}
	var account CounterAccount
	if err := borsh.Deserialize(&account, region[:CounterLen]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return account.Counter, nil
}

// EncodeCounter overwrites the first [CounterLen] bytes of [region] with
// [value]. Bytes past [CounterLen] are left untouched.
func EncodeCounter(value uint32, region []byte) error {
	if len(region) < CounterLen {
		return fmt.Errorf("%w: region has %d bytes, need %d", ErrStorageTooSmall, len(region), CounterLen)
	}
	b, err := borsh.Serialize(CounterAccount{Counter: value})
	if err != nil {
		return err
	}
	if len(b) != CounterLen {
		return fmt.Errorf("%w: encoded counter is %d bytes", ErrStorageTooSmall, len(b))
	}
	copy(region[:CounterLen], b)
	return nil
}
