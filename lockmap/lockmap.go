// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import "sync"

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

// Lockmap hands out a reader/writer lock per key. Entries only exist while at
// least one caller holds or waits on the key.
type Lockmap[K comparable] struct {
	l sync.Mutex
	m map[K]*holderLock
}

func New[K comparable](initSize int) *Lockmap[K] {
	return &Lockmap[K]{
		m: make(map[K]*holderLock, initSize),
	}
}

func (l *Lockmap[K]) Lock(key K) {
	l.lock(key, true)
}

func (l *Lockmap[K]) Unlock(key K) {
	l.unlock(key, true)
}

func (l *Lockmap[K]) RLock(key K) {
	l.lock(key, false)
}

func (l *Lockmap[K]) RUnlock(key K) {
	l.unlock(key, false)
}

func (l *Lockmap[K]) lock(key K, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap[K]) unlock(key K, write bool) {
	l.l.Lock()
	hl := l.m[key]
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
	l.l.Unlock()

	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
}

// Locks returns the number of keys currently held or waited on.
func (l *Lockmap[K]) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
