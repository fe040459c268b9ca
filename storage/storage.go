// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/hypercounter/pebble"
)

// New opens the durable account database under [dataDir].
func New(cfg pebble.Config, dataDir string, reg prometheus.Registerer) (*pebble.Database, error) {
	path := filepath.Join(dataDir, accountsNamespace)
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, err
	}
	return pebble.New(path, cfg, reg)
}
