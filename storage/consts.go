// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "github.com/ava-labs/hypercounter/consts"

// State
// 0x0/ (accounts)
//   -> [account id] => account region
const accountPrefix byte = 0x0

// CounterLen is the size of the encoded [CounterAccount]. Account regions are
// at least this long.
const CounterLen = consts.Uint32Len

const accountsNamespace = "accountdb"
