// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/hypercounter/consts"
)

// UnpackUint32 reads the borsh (little-endian) encoding of a uint32 from the
// first [consts.Uint32Len] bytes of [b]. Any bytes after that are not read.
func UnpackUint32(b []byte) (uint32, error) {
	if len(b) < consts.Uint32Len {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrInsufficientLength, consts.Uint32Len, len(b))
	}
	var v uint32
	if err := borsh.Deserialize(&v, b[:consts.Uint32Len]); err != nil {
		return 0, err
	}
	return v, nil
}

// PackUint32 returns the borsh (little-endian) encoding of [v].
func PackUint32(v uint32) []byte {
	b, err := borsh.Serialize(v)
	if err != nil {
		// fixed-width integers always serialize
		panic(err)
	}
	return b
}
