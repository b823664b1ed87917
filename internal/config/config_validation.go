// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"regexp"
	"strings"
)

var soupNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.ClientID == "" || cfg.Adapter.ClientSecret == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.ObjectName == "" || len(cfg.Sync.FieldList) == 0 {
		return ErrInvalidSyncConfigs
	}
	if !soupNamePattern.MatchString(cfg.Sync.SoupName) {
		return fmt.Errorf("%w: soup name %q", ErrInvalidSyncConfigs, cfg.Sync.SoupName)
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 ||
		cfg.App.HashKey == "" || cfg.App.ClientID == "" || cfg.App.ClientSecretHash == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
