// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/hypercounter/api"
	"github.com/ava-labs/hypercounter/api/jsonrpc"
	"github.com/ava-labs/hypercounter/server"
)

const (
	baseURL      = "/ext"
	metricsRoute = "metrics"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter JSON-RPC API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", c.cfg.HTTPAddress())
			if err != nil {
				return err
			}
			srv := server.New(c.log, listener, server.Options{
				BaseURL:         baseURL,
				HTTP:            c.cfg.HTTP,
				AllowedOrigins:  c.cfg.AllowedOrigins,
				AllowedHosts:    c.cfg.AllowedHosts,
				ShutdownTimeout: c.cfg.ShutdownTimeout,
			})
			if err := api.Register[api.Host](srv, api.Name, c.host, jsonrpc.JSONRPCServerFactory{}); err != nil {
				return err
			}
			if err := srv.AddRoute(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}), metricsRoute, ""); err != nil {
				return err
			}

			c.log.Info("serving",
				zap.String("address", listener.Addr().String()),
				zap.String("api", baseURL+"/"+api.Name+jsonrpc.Endpoint),
			)
			err = srv.Serve(ctx)
			c.log.Info("stopped serving")
			return err
		},
	}
}
