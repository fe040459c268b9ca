// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/hypercounter/api"
	"github.com/ava-labs/hypercounter/codec"
	"github.com/ava-labs/hypercounter/program"
	"github.com/ava-labs/hypercounter/storage"

	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	Endpoint = "/counterapi"
)

var _ api.HandlerFactory[api.Host] = (*JSONRPCServerFactory)(nil)

type JSONRPCServerFactory struct{}

func (JSONRPCServerFactory) New(host api.Host) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(api.Name, NewJSONRPCServer(host))
	if err != nil {
		return api.Handler{}, err
	}

	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

type JSONRPCServer struct {
	host api.Host
}

func NewJSONRPCServer(host api.Host) *JSONRPCServer {
	return &JSONRPCServer{host}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.host.Logger().Info("ping")
	reply.Success = true
	return nil
}

type CreateAccountArgs struct {
	ID ids.ID `json:"id"`
	// Size of the region in bytes. Zero provisions a bare counter.
	Size int `json:"size"`
}

type CreateAccountReply struct {
	Size int `json:"size"`
}

func (j *JSONRPCServer) CreateAccount(
	req *http.Request,
	args *CreateAccountArgs,
	reply *CreateAccountReply,
) error {
	ctx, span := j.host.Tracer().Start(req.Context(), "JSONRPCServer.CreateAccount")
	defer span.End()

	size := args.Size
	if size == 0 {
		size = storage.CounterLen
	}
	if err := j.host.CreateAccount(ctx, args.ID, size); err != nil {
		return err
	}
	reply.Size = size
	return nil
}

type InvokeArgs struct {
	ID   ids.ID      `json:"id"`
	Data codec.Bytes `json:"data"`
}

type InvokeReply struct {
	// Stored counter after the call. When Code is not zero the account was
	// left unchanged and this is the counter it still holds.
	Counter uint32 `json:"counter"`
	Code    uint32 `json:"code"`
	Error   string `json:"error,omitempty"`
}

// Invoke runs one instruction against an account. Program failures are
// reported through [InvokeReply.Code]; anything the program cannot classify
// is returned as an RPC error.
func (j *JSONRPCServer) Invoke(
	req *http.Request,
	args *InvokeArgs,
	reply *InvokeReply,
) error {
	ctx, span := j.host.Tracer().Start(req.Context(), "JSONRPCServer.Invoke",
		oteltrace.WithAttributes(
			attribute.Stringer("account", args.ID),
			attribute.Int("size", len(args.Data)),
		),
	)
	defer span.End()

	counter, err := j.host.Invoke(ctx, args.ID, args.Data)
	code := program.ErrorCode(err)
	if code == program.CodeUnknown {
		return err
	}
	reply.Counter = counter
	reply.Code = code
	if err != nil {
		reply.Error = err.Error()
	}
	return nil
}

type AccountArgs struct {
	ID ids.ID `json:"id"`
}

type CounterReply struct {
	Counter uint32 `json:"counter"`
}

func (j *JSONRPCServer) Counter(
	req *http.Request,
	args *AccountArgs,
	reply *CounterReply,
) error {
	ctx, span := j.host.Tracer().Start(req.Context(), "JSONRPCServer.Counter")
	defer span.End()

	counter, err := j.host.Counter(ctx, args.ID)
	if err != nil {
		return err
	}
	reply.Counter = counter
	return nil
}

type CloseAccountReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) CloseAccount(
	req *http.Request,
	args *AccountArgs,
	reply *CloseAccountReply,
) error {
	ctx, span := j.host.Tracer().Start(req.Context(), "JSONRPCServer.CloseAccount")
	defer span.End()

	if err := j.host.CloseAccount(ctx, args.ID); err != nil {
		return err
	}
	reply.Success = true
	return nil
}
