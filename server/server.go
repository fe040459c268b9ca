// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var _ Server = (*server)(nil)

type PathAdder interface {
	// AddRoute registers [handler] at [baseURL]/[base][endpoint].
	AddRoute(handler http.Handler, base, endpoint string) error
}

type Server interface {
	PathAdder

	// Serve handles requests until [ctx] is done, then drains open
	// connections for at most the shutdown timeout.
	Serve(ctx context.Context) error
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
}

type Options struct {
	BaseURL         string
	HTTP            HTTPConfig
	AllowedOrigins  []string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
}

type server struct {
	log      logging.Logger
	opts     Options
	router   *router
	srv      *http.Server
	listener net.Listener
}

func New(log logging.Logger, listener net.Listener, opts Options) Server {
	router := newRouter()
	log.Info("API created",
		zap.Strings("allowedOrigins", opts.AllowedOrigins),
		zap.Strings("allowedHosts", opts.AllowedHosts),
	)
	return &server{
		log:    log,
		opts:   opts,
		router: router,
		srv: &http.Server{
			Handler:           wrap(router, opts.AllowedOrigins, opts.AllowedHosts),
			ReadTimeout:       opts.HTTP.ReadTimeout,
			ReadHeaderTimeout: opts.HTTP.ReadHeaderTimeout,
			WriteTimeout:      opts.HTTP.WriteTimeout,
			IdleTimeout:       opts.HTTP.IdleTimeout,
		},
		listener: listener,
	}
}

// wrap applies, outermost first: gzip, CORS, then the Host header filter.
func wrap(h http.Handler, allowedOrigins, allowedHosts []string) http.Handler {
	h = filterInvalidHosts(h, allowedHosts)
	h = cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(h)
	return gziphandler.GzipHandler(h)
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := path.Join(s.opts.BaseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	// connections still open after the timeout are dropped
	_ = s.srv.Close()
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
		err = errors.Join(err, serveErr)
	}
	return err
}
