// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"

	"github.com/ava-labs/hypercounter/server"
)

const Name = "counter"

type Handler struct {
	Path    string
	Handler http.Handler
}

type HandlerFactory[T any] interface {
	New(t T) (Handler, error)
}

// NewJSONRPCHandler returns a JSON-RPC handler serving [service] under [name].
func NewJSONRPCHandler(name string, service any) (http.Handler, error) {
	s := rpc.NewServer()
	codec := json.NewCodec()
	s.RegisterCodec(codec, "application/json")
	s.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := s.RegisterService(service, name); err != nil {
		return nil, err
	}
	return s, nil
}

// Register builds every handler from [factories] and adds them to [s] under
// [base].
func Register[T any](s server.PathAdder, base string, t T, factories ...HandlerFactory[T]) error {
	for _, factory := range factories {
		h, err := factory.New(t)
		if err != nil {
			return err
		}
		if err := s.AddRoute(h.Handler, base, h.Path); err != nil {
			return err
		}
	}
	return nil
}
