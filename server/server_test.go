// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouter(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	require.NoError(r.AddRouter("/ext/counter", "/api", okHandler()))
	require.ErrorContains(r.AddRouter("/ext/counter", "/api", okHandler()), "already exists")

	_, err := r.GetHandler("/ext/counter", "/api")
	require.NoError(err)
	_, err = r.GetHandler("/ext/counter", "/missing")
	require.ErrorIs(err, errUnknownBaseURL)
	_, err = r.GetHandler("/ext/missing", "/api")
	require.ErrorIs(err, errUnknownBaseURL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ext/counter/api", nil))
	require.Equal(http.StatusOK, w.Code)
	require.Equal("ok", w.Body.String())
}

func TestFilterInvalidHosts(t *testing.T) {
	tests := []struct {
		name         string
		allowedHosts []string
		host         string
		expected     int
	}{
		{
			name:         "allowed",
			allowedHosts: []string{"localhost"},
			host:         "localhost:9650",
			expected:     http.StatusOK,
		},
		{
			name:         "case insensitive",
			allowedHosts: []string{"localhost"},
			host:         "LocalHost",
			expected:     http.StatusOK,
		},
		{
			name:         "ip",
			allowedHosts: []string{"localhost"},
			host:         "127.0.0.1:9650",
			expected:     http.StatusOK,
		},
		{
			name:         "wildcard",
			allowedHosts: []string{"*"},
			host:         "example.com",
			expected:     http.StatusOK,
		},
		{
			name:         "rejected",
			allowedHosts: []string{"localhost"},
			host:         "example.com",
			expected:     http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			filterInvalidHosts(okHandler(), tt.allowedHosts).ServeHTTP(w, req)
			require.Equal(tt.expected, w.Code)
		})
	}
}

func TestServeUntilCanceled(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)

	s := New(logging.NoLog{}, listener, Options{
		BaseURL:         "/ext",
		HTTP:            HTTPConfig{ReadHeaderTimeout: time.Second},
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: time.Second,
	})
	require.NoError(s.AddRoute(okHandler(), "counter", "/api"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ext/counter/api")
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Equal("ok", string(body))

	cancel()
	require.NoError(<-done)
}

func TestServeReportsListenerError(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	require.NoError(listener.Close())

	s := New(logging.NoLog{}, listener, Options{ShutdownTimeout: time.Second})
	err = s.Serve(context.Background())
	require.ErrorIs(err, net.ErrClosed)
}

func TestWrapRejectsUnknownHost(t *testing.T) {
	require := require.New(t)

	h := wrap(okHandler(), []string{"*"}, []string{"localhost"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "example.com"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(http.StatusForbidden, w.Code)
}
