// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/handler"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestServer(t *testing.T, addr string) Server {
	t.Helper()
	cfg := config.ServerHTTP{HTTPAddress: addr, RequestTimeout: time.Second}

	handlers, err := handler.NewHandlers(nil, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	return srv
}

func TestNewServer_NoHandlers(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.ServerHTTP
	}{
		{name: "nil handlers", cfg: config.ServerHTTP{HTTPAddress: ":8080"}},
		{name: "no http handler", handlers: &handler.Handlers{}, cfg: config.ServerHTTP{HTTPAddress: ":8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.handlers, tt.cfg, logger.Nop())

			require.ErrorIs(t, err, errNoServersAreCreated)
			assert.Nil(t, srv)
		})
	}
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	srv := newTestServer(t, addr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := newTestServer(t, l.Addr().String())

	err = srv.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListenAndServe")
}
