// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ServerHTTP
		wantErr error
	}{
		{name: "http address", cfg: config.ServerHTTP{HTTPAddress: ":8080"}},
		{name: "no address", cfg: config.ServerHTTP{}, wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The handler only stores the services pointer at construction.
			h, err := NewHandlers(nil, tt.cfg, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, h.HTTP)
		})
	}
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.ServerHTTP{HTTPAddress: ":8080"}

	h1, err1 := NewHandlers(nil, cfg, logger.Nop())
	h2, err2 := NewHandlers(nil, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}

func TestNewHandlers_RouterServesMetrics(t *testing.T) {
	h, err := NewHandlers(nil, config.ServerHTTP{HTTPAddress: ":8080"}, logger.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HTTP.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
