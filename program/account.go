// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "github.com/ava-labs/avalanchego/ids"

// AccountInfo is an account region lent to the program for one invocation.
// The host owns [Data]; the program only mutates it in place.
type AccountInfo struct {
	Key      ids.ID
	Writable bool
	Data     []byte
}

// NextAccountInfo pops the first account off [accounts].
func NextAccountInfo(accounts *[]*AccountInfo) (*AccountInfo, error) {
	if len(*accounts) == 0 {
		return nil, ErrNotEnoughAccountKeys
	}
	account := (*accounts)[0]
	*accounts = (*accounts)[1:]
	return account, nil
}
