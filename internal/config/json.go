// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		HashKey          string   `json:"hash_key"`
		ClientID         string   `json:"client_id"`
		ClientSecretHash string   `json:"client_secret_hash"`
		Version          string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Local struct {
			DSN string `json:"dsn"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Retries        int      `json:"retries"`
		ClientID       string   `json:"client_id"`
		ClientSecret   string   `json:"client_secret"`
	} `json:"adapter,omitempty"`

	Sync struct {
		ObjectName  string   `json:"object_name"`
		SoupName    string   `json:"soup_name"`
		FieldList   []string `json:"field_list"`
		RecordLimit int      `json:"record_limit"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Log struct {
		FilePath   string `json:"file_path"`
		MaxSizeMB  int    `json:"max_size_mb"`
		MaxBackups int    `json:"max_backups"`
		MaxAgeDays int    `json:"max_age_days"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     j.App.TokenSignKey,
			TokenIssuer:      j.App.TokenIssuer,
			TokenDuration:    time.Duration(j.App.TokenDuration),
			HashKey:          j.App.HashKey,
			ClientID:         j.App.ClientID,
			ClientSecretHash: j.App.ClientSecretHash,
			Version:          j.App.Version,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Local: Local{DSN: j.Storage.Local.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
			Retries:        j.Adapter.Retries,
			ClientID:       j.Adapter.ClientID,
			ClientSecret:   j.Adapter.ClientSecret,
		},
		Sync: Sync{
			ObjectName:  j.Sync.ObjectName,
			SoupName:    j.Sync.SoupName,
			FieldList:   j.Sync.FieldList,
			RecordLimit: j.Sync.RecordLimit,
		},
		Workers: Workers{SyncInterval: time.Duration(j.Workers.SyncInterval)},
		Log: Log{
			FilePath:   j.Log.FilePath,
			MaxSizeMB:  j.Log.MaxSizeMB,
			MaxBackups: j.Log.MaxBackups,
			MaxAgeDays: j.Log.MaxAgeDays,
		},
	}, nil
}

// Duration accepts either a Go duration string ("1h", "30s") or a number of
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
