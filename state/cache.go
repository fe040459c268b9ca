// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/ristretto"
)

var (
	_ Mutable = (*CachedMutable)(nil)

	ErrInvalidCacheSize = errors.New("invalid cache size")
)

// CachedMutable keeps recently used account regions in memory in front of
// another Mutable. Writes go through to the underlying store before the cache
// is updated.
//
// Callers must not read and write the same key concurrently.
type CachedMutable struct {
	mu    Mutable
	cache *ristretto.Cache
}

// NewCachedMutable caches up to [maxBytes] of values read from or written to
// [mu].
func NewCachedMutable(mu Mutable, maxBytes int64) (*CachedMutable, error) {
	if maxBytes <= 0 {
		return nil, ErrInvalidCacheSize
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: max(maxBytes/64, 1_024),
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedMutable{mu: mu, cache: cache}, nil
}

func (c *CachedMutable) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		if b, ok := v.([]byte); ok {
			return slices.Clone(b), nil
		}
		c.cache.Del(key)
	}
	value, err := c.mu.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	c.set(key, value)
	return value, nil
}

func (c *CachedMutable) Insert(ctx context.Context, key []byte, value []byte) error {
	if err := c.mu.Insert(ctx, key, value); err != nil {
		// The store may or may not hold the new value.
		c.cache.Del(key)
		c.cache.Wait()
		return err
	}
	c.cache.Del(key)
	c.set(key, value)
	return nil
}

func (c *CachedMutable) Remove(ctx context.Context, key []byte) error {
	c.cache.Del(key)
	c.cache.Wait()
	return c.mu.Remove(ctx, key)
}

// Close releases the cache. The underlying store is left open.
func (c *CachedMutable) Close() error {
	c.cache.Close()
	return nil
}

func (c *CachedMutable) set(key []byte, value []byte) {
	c.cache.Set(key, slices.Clone(value), int64(len(key)+len(value)))
	c.cache.Wait()
}
