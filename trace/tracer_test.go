// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{Enabled: false, ServiceName: "counter"})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "test")
	require.False(span.SpanContext().IsValid())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		ServiceName:     "counter",
	})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "test")
	require.True(span.SpanContext().IsValid())
	span.End()
	// the exporter is never reached, shutdown only drops the batch
	_ = tracer.Close()
}

func TestChildSpansFollowParent(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 0,
		ServiceName:     "counter",
	})
	require.NoError(err)
	defer func() {
		_ = tracer.Close()
	}()

	ctx, root := tracer.Start(context.Background(), "root")
	require.False(root.SpanContext().IsSampled())
	_, child := tracer.Start(ctx, "child")
	require.False(child.SpanContext().IsSampled())
	child.End()
	root.End()
}
