// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

var _ database.KeyValueReaderWriterDeleter = (*Database)(nil)

type Config struct {
	CacheSize      int64 `json:"cacheSize"`
	BytesPerSync   int   `json:"bytesPerSync"`
	MaxOpenFiles   int   `json:"maxOpenFiles"`
	Sync           bool  `json:"sync"`
	MetricsEnabled bool  `json:"metricsEnabled"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:      64 * units.MiB,
		BytesPerSync:   1 * units.MiB,
		MaxOpenFiles:   1_024,
		Sync:           true,
		MetricsEnabled: true,
	}
}

// Database stores account regions in a pebble instance. Missing keys return
// [database.ErrNotFound] and calls after Close return [database.ErrClosed].
type Database struct {
	lock   sync.RWMutex
	closed bool

	db           *pebble.DB
	writeOptions *pebble.WriteOptions
	metrics      *metrics

	done chan struct{}
	wg   sync.WaitGroup
}

func New(file string, cfg Config, reg prometheus.Registerer) (*Database, error) {
	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()

	db, err := pebble.Open(file, &pebble.Options{
		Cache:        cache,
		BytesPerSync: cfg.BytesPerSync,
		MaxOpenFiles: cfg.MaxOpenFiles,
	})
	if err != nil {
		return nil, err
	}
	d := &Database{
		db:           db,
		writeOptions: &pebble.WriteOptions{Sync: cfg.Sync},
		done:         make(chan struct{}),
	}
	if !cfg.MetricsEnabled {
		return d, nil
	}

	d.metrics, err = newMetrics(reg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		t := time.NewTicker(metricsInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				d.metrics.update(d.db.Metrics())
			case <-d.done:
				return
			}
		}
	}()
	return d, nil
}

func (d *Database) Has(key []byte) (bool, error) {
	_, err := d.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (d *Database) Get(key []byte) ([]byte, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	v, closer, err := d.db.Get(key)
	if d.metrics != nil {
		d.metrics.getLatency.Observe(float64(time.Since(start)))
	}
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := slices.Clone(v)
	return value, closer.Close()
}

func (d *Database) Put(key []byte, value []byte) error {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.closed {
		return database.ErrClosed
	}
	return d.db.Set(key, value, d.writeOptions)
}

func (d *Database) Delete(key []byte) error {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.closed {
		return database.ErrClosed
	}
	return d.db.Delete(key, d.writeOptions)
}

func (d *Database) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return database.ErrClosed
	}
	d.closed = true
	close(d.done)
	d.wg.Wait()
	return d.db.Close()
}
