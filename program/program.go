// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/hypercounter/instructions"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Program is the counter program as seen by a host: an entry point taking the
// accounts of a request and its raw instruction bytes.
type Program struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics
}

func New(log logging.Logger, tracer trace.Tracer, reg prometheus.Registerer) (*Program, error) {
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &Program{
		log:     log,
		tracer:  tracer,
		metrics: m,
	}, nil
}

// ProcessInstruction applies [data] to the counter held by the first account
// in [accounts]. Remaining accounts are ignored. The account must be
// writable; its Data is only modified when nil is returned.
func (p *Program) ProcessInstruction(
	ctx context.Context,
	accounts []*AccountInfo,
	data []byte,
) error {
	_, span := p.tracer.Start(ctx, "Program.ProcessInstruction",
		oteltrace.WithAttributes(
			attribute.Int("accounts", len(accounts)),
			attribute.Int("dataLen", len(data)),
		),
	)
	defer span.End()

	p.log.Debug("counter program entry point",
		zap.Int("accounts", len(accounts)),
		zap.Binary("data", data),
	)

	ins, counter, err := p.process(accounts, data)
	if err != nil {
		code := ErrorCode(err)
		p.metrics.failures.WithLabelValues(CodeName(code)).Inc()
		span.RecordError(err)
		p.log.Debug("instruction failed",
			zap.Uint32("code", code),
			zap.Error(err),
		)
		return err
	}

	kind := instructions.Name(ins.GetTypeID())
	p.metrics.instructions.WithLabelValues(kind).Inc()
	p.metrics.counter.Set(float64(counter))
	span.SetAttributes(
		attribute.String("instruction", kind),
		attribute.Int64("counter", int64(counter)),
	)
	p.log.Debug("instruction applied",
		zap.Stringer("instruction", ins),
		zap.Uint32("counter", counter),
	)
	return nil
}

func (*Program) process(accounts []*AccountInfo, data []byte) (instructions.Instruction, uint32, error) {
	remaining := accounts
	account, err := NextAccountInfo(&remaining)
	if err != nil {
		return nil, 0, err
	}
	if !account.Writable {
		return nil, 0, fmt.Errorf("%w: %s", ErrAccountNotWritable, account.Key)
	}
	return apply(account.Data, data)
}
