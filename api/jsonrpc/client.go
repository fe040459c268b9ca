// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/hypercounter/api"
	"github.com/ava-labs/hypercounter/instructions"
	"github.com/ava-labs/hypercounter/program"
)

var ErrInvocationFailed = errors.New("invocation failed")

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func method(name string) string {
	return api.Name + "." + name
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		method("ping"),
		struct{}{},
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) CreateAccount(ctx context.Context, id ids.ID, size int) (int, error) {
	resp := new(CreateAccountReply)
	err := cli.requester.SendRequest(
		ctx,
		method("createAccount"),
		&CreateAccountArgs{ID: id, Size: size},
		resp,
	)
	return resp.Size, err
}

// InvokeRaw submits pre-encoded instruction bytes and returns the reply as
// reported by the service.
func (cli *JSONRPCClient) InvokeRaw(ctx context.Context, id ids.ID, data []byte) (*InvokeReply, error) {
	resp := new(InvokeReply)
	err := cli.requester.SendRequest(
		ctx,
		method("invoke"),
		&InvokeArgs{ID: id, Data: data},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Invoke submits [ins] and returns the new counter. A program failure is
// returned as an error wrapping [ErrInvocationFailed].
func (cli *JSONRPCClient) Invoke(ctx context.Context, id ids.ID, ins instructions.Instruction) (uint32, error) {
	resp, err := cli.InvokeRaw(ctx, id, instructions.Marshal(ins))
	if err != nil {
		return 0, err
	}
	if resp.Code != program.CodeOK {
		return 0, fmt.Errorf("%w: code=%s: %s", ErrInvocationFailed, program.CodeName(resp.Code), resp.Error)
	}
	return resp.Counter, nil
}

func (cli *JSONRPCClient) Counter(ctx context.Context, id ids.ID) (uint32, error) {
	resp := new(CounterReply)
	err := cli.requester.SendRequest(
		ctx,
		method("counter"),
		&AccountArgs{ID: id},
		resp,
	)
	return resp.Counter, err
}

func (cli *JSONRPCClient) CloseAccount(ctx context.Context, id ids.ID) error {
	resp := new(CloseAccountReply)
	return cli.requester.SendRequest(
		ctx,
		method("closeAccount"),
		&AccountArgs{ID: id},
		resp,
	)
}

// WaitForCounter polls account [id] until [check] accepts its counter.
func (cli *JSONRPCClient) WaitForCounter(
	ctx context.Context,
	interval time.Duration,
	id ids.ID,
	check func(uint32) bool,
) error {
	return Wait(ctx, interval, func(ctx context.Context) (bool, error) {
		counter, err := cli.Counter(ctx, id)
		if err != nil {
			return false, err
		}
		return check(counter), nil
	})
}

func Wait(ctx context.Context, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	for ctx.Err() == nil {
		exit, err := check(ctx)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		time.Sleep(interval)
	}
	return ctx.Err()
}
