// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerApp holds token and integrity settings of the record API.
type ServerApp struct {
	TokenSignKey     string
	TokenIssuer      string
	TokenDuration    time.Duration
	HashKey          string
	ClientID         string
	ClientSecretHash string
	Version          string
}

// ServerHTTP holds listen settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerDB holds the PostgreSQL connection string.
type ServerDB struct {
	DSN string
}

// ServerConfig is the server view of [StructuredConfig].
type ServerConfig struct {
	App    ServerApp
	Server ServerHTTP
	DB     ServerDB
}

// GetServerConfig builds and validates the server view of the merged
// configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.ServerConfig()

	return serverCfg, serverCfg.validate()
}

// ServerConfig maps the fields relevant to the record API server.
func (cfg *StructuredConfig) ServerConfig() *ServerConfig {
	return &ServerConfig{
		App: ServerApp{
			TokenSignKey:     cfg.App.TokenSignKey,
			TokenIssuer:      cfg.App.TokenIssuer,
			TokenDuration:    cfg.App.TokenDuration,
			HashKey:          cfg.App.HashKey,
			ClientID:         cfg.App.ClientID,
			ClientSecretHash: cfg.App.ClientSecretHash,
			Version:          cfg.App.Version,
		},
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		DB: ServerDB{DSN: cfg.Storage.DB.DSN},
	}
}
