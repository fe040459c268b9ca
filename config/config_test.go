// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypercounter/storage"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(logging.Info, c.LogLevel)
	require.Equal(storage.CounterLen, c.AccountSize)
	require.False(c.Trace.Enabled)
	require.True(c.Pebble.Sync)
	require.Equal("127.0.0.1:9650", c.HTTPAddress())
}

func TestOverrides(t *testing.T) {
	require := require.New(t)

	c, err := New([]byte(`{"logLevel":"debug","accountSize":16,"dataDir":"/tmp/x","httpPort":1234,"pebble":{"sync":false}}`))
	require.NoError(err)
	require.Equal(logging.Debug, c.LogLevel)
	require.Equal(16, c.AccountSize)
	require.Equal("/tmp/x", c.DataDir)
	require.False(c.Pebble.Sync)
	// untouched nested defaults survive
	require.Equal(1_024, c.Pebble.MaxOpenFiles)
	require.Equal("127.0.0.1:1234", c.HTTPAddress())
}

func TestInvalid(t *testing.T) {
	require := require.New(t)

	_, err := New([]byte(`{"accountSize":3}`))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = New([]byte(`{"accountCacheSize":-1}`))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = New([]byte(`{"trace":{"traceSampleRate":2}}`))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = New([]byte(`{`))
	require.Error(err)
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(`{"accountSize":8}`), 0o600))
	c, err := Load(path)
	require.NoError(err)
	require.Equal(8, c.AccountSize)

	c, err = Load("")
	require.NoError(err)
	require.Equal(storage.CounterLen, c.AccountSize)
}
