// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/ava-labs/hypercounter/consts"
	"github.com/ava-labs/hypercounter/pebble"
	"github.com/ava-labs/hypercounter/server"
	"github.com/ava-labs/hypercounter/storage"
	"github.com/ava-labs/hypercounter/trace"
)

var ErrInvalidConfig = errors.New("invalid config")

const dataFolder = ".hypercounter"

type Config struct {
	// Logging
	LogLevel   logging.Level `json:"logLevel"`
	LogDir     string        `json:"logDir"`
	LogDisplay bool          `json:"logDisplay"`

	// Storage
	DataDir     string        `json:"dataDir"`
	Pebble      pebble.Config `json:"pebble"`
	AccountSize int           `json:"accountSize"`

	// Bytes of account regions kept in memory. Zero disables the cache.
	AccountCacheSize int64 `json:"accountCacheSize"`

	// Tracing
	Trace trace.Config `json:"trace"`

	// API
	HTTPHost        string            `json:"httpHost"`
	HTTPPort        uint16            `json:"httpPort"`
	HTTP            server.HTTPConfig `json:"http"`
	AllowedOrigins  []string          `json:"allowedOrigins"`
	AllowedHosts    []string          `json:"allowedHosts"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout"`
}

// New returns the default config overridden by the JSON in [b].
func New(b []byte) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	base := filepath.Join(home, dataFolder)
	c := &Config{
		LogLevel:    logging.Info,
		LogDir:      filepath.Join(base, "logs"),
		LogDisplay:  true,
		DataDir:     filepath.Join(base, "db"),
		Pebble:      pebble.NewDefaultConfig(),
		AccountSize: storage.CounterLen,

		AccountCacheSize: 16 * units.MiB,
		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 0.1,
			ServiceName:     consts.Name,
		},
		HTTPHost: "127.0.0.1",
		HTTPPort: 9650,
		HTTP: server.HTTPConfig{
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: 10 * time.Second,
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config at [path]. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(b)
}

func (c *Config) Verify() error {
	if c.AccountSize < storage.CounterLen {
		return fmt.Errorf("%w: accountSize %d < %d", ErrInvalidConfig, c.AccountSize, storage.CounterLen)
	}
	if c.AccountCacheSize < 0 {
		return fmt.Errorf("%w: accountCacheSize %d < 0", ErrInvalidConfig, c.AccountCacheSize)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: dataDir is empty", ErrInvalidConfig)
	}
	if c.Trace.TraceSampleRate < 0 || c.Trace.TraceSampleRate > 1 {
		return fmt.Errorf("%w: traceSampleRate %f not in [0, 1]", ErrInvalidConfig, c.Trace.TraceSampleRate)
	}
	return nil
}

func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
