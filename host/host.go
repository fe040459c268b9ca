// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/hypercounter/lockmap"
	"github.com/ava-labs/hypercounter/program"
	"github.com/ava-labs/hypercounter/state"
	"github.com/ava-labs/hypercounter/storage"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// MaxAccountSize bounds the region a single account may be provisioned with.
const MaxAccountSize = 10 * 1024

// Host provisions account regions, serializes invocations per account and
// persists the regions the program writes.
type Host struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      state.Mutable
	program *program.Program

	locks *lockmap.Lockmap[ids.ID]
}

func New(log logging.Logger, tracer trace.Tracer, db state.Mutable, p *program.Program) *Host {
	return &Host{
		log:     log,
		tracer:  tracer,
		db:      db,
		program: p,
		locks:   lockmap.New[ids.ID](64),
	}
}

// CreateAccount provisions a zero-filled region of [size] bytes for [id]. A
// fresh account holds counter 0.
func (h *Host) CreateAccount(ctx context.Context, id ids.ID, size int) error {
	if size < storage.CounterLen || size > MaxAccountSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidAccountSize, size, storage.CounterLen, MaxAccountSize)
	}

	h.locks.Lock(id)
	defer h.locks.Unlock(id)

	exists, err := storage.HasAccount(ctx, h.db, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, id)
	}
	if err := storage.SetAccountData(ctx, h.db, id, make([]byte, size)); err != nil {
		return err
	}
	h.log.Info("account created",
		zap.Stringer("id", id),
		zap.Int("size", size),
	)
	return nil
}

// Invoke runs the program against account [id] with instruction [data] and
// returns the stored counter. The stored region is replaced only if the
// program succeeds; on failure the unchanged counter is returned alongside the
// error (0 if the region cannot be read or decoded).
func (h *Host) Invoke(ctx context.Context, id ids.ID, data []byte) (uint32, error) {
	ctx, span := h.tracer.Start(ctx, "Host.Invoke",
		oteltrace.WithAttributes(
			attribute.Stringer("account", id),
		),
	)
	defer span.End()

	h.locks.Lock(id)
	defer h.locks.Unlock(id)

	region, err := storage.GetAccountData(ctx, h.db, id)
	if err != nil {
		return 0, err
	}
	// The program works on a copy so a failure can never leak into storage,
	// whatever the backing store does with the slice it returned.
	account := &program.AccountInfo{
		Key:      id,
		Writable: true,
		Data:     append([]byte(nil), region...),
	}
	if err := h.program.ProcessInstruction(ctx, []*program.AccountInfo{account}, data); err != nil {
		h.log.Debug("invocation failed",
			zap.Stringer("id", id),
			zap.Error(err),
		)
		return storedCounter(region), err
	}
	if err := storage.SetAccountData(ctx, h.db, id, account.Data); err != nil {
		return storedCounter(region), err
	}
	return storage.DecodeCounter(account.Data)
}

func storedCounter(region []byte) uint32 {
	counter, err := storage.DecodeCounter(region)
	if err != nil {
		return 0
	}
	return counter
}

// Counter returns the counter held by account [id].
func (h *Host) Counter(ctx context.Context, id ids.ID) (uint32, error) {
	h.locks.RLock(id)
	defer h.locks.RUnlock(id)

	return storage.GetCounter(ctx, h.db, id)
}

// CloseAccount deallocates the region of account [id].
func (h *Host) CloseAccount(ctx context.Context, id ids.ID) error {
	h.locks.Lock(id)
	defer h.locks.Unlock(id)

	if _, err := storage.GetAccountData(ctx, h.db, id); err != nil {
		return err
	}
	if err := storage.DeleteAccount(ctx, h.db, id); err != nil {
		return err
	}
	h.log.Info("account closed",
		zap.Stringer("id", id),
	)
	return nil
}

func (h *Host) Tracer() trace.Tracer {
	return h.tracer
}

func (h *Host) Logger() logging.Logger {
	return h.log
}
