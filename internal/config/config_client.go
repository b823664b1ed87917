// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs pushed record payloads.
	HashKey string
	Version string
}

// ClientAdapter holds the record API connection used by the client.
type ClientAdapter struct {
	// BaseURL is the record API root, always with a scheme.
	BaseURL        string
	RequestTimeout time.Duration
	Retries        int
	ClientID       string
	ClientSecret   string
}

// ClientDB contains local database settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientSync configures the sync coordinator.
type ClientSync struct {
	ObjectName  string
	SoupName    string
	FieldList   []string
	RecordLimit int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval time.Duration
}

// ClientLog contains client log file settings.
type ClientLog struct {
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
	Log     ClientLog
}

// GetClientConfig builds and validates the client view of the merged
// configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientConfig()

	return clientCfg, clientCfg.validate()
}

// ClientConfig maps the fields relevant to the client runtime.
func (cfg *StructuredConfig) ClientConfig() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			BaseURL:        baseURL(cfg.Adapter.HTTPAddress),
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Retries:        cfg.Adapter.Retries,
			ClientID:       cfg.Adapter.ClientID,
			ClientSecret:   cfg.Adapter.ClientSecret,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.Local.DSN},
		},
		Sync: ClientSync{
			ObjectName:  cfg.Sync.ObjectName,
			SoupName:    cfg.Sync.SoupName,
			FieldList:   cfg.Sync.FieldList,
			RecordLimit: cfg.Sync.RecordLimit,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Log: ClientLog{
			FilePath:   cfg.Log.FilePath,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	}
}

func baseURL(address string) string {
	if address == "" {
		return ""
	}
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return strings.TrimRight(address, "/")
	}
	return "http://" + address
}
