// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the server binaries. It is populated by merging environment
// variables, command-line flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env tag lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, integrity and version settings.
	App App `envPrefix:"APP_"`

	// Storage holds the server database and the client's local store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the record API listen address and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's connection to the record API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync describes which remote object the client mirrors and into which soup.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the client log file rotation settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings for token issuing and request integrity.
type App struct {
	// TokenSignKey signs and verifies access tokens (server).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens (server).
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the access token lifetime (server).
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used to sign record payloads. Client and server
	// must share it.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// ClientID is the API client allowed to request tokens (server).
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// ClientSecretHash is the bcrypt hash of that client's secret (server).
	// Env: APP_CLIENT_SECRET_HASH
	ClientSecretHash string `env:"CLIENT_SECRET_HASH"`

	// Version is exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings of both binaries.
type Storage struct {
	// DB is the server's PostgreSQL database.
	DB DB `envPrefix:"DB_"`

	// Local is the client's SQLite soup store.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client's local store settings.
type Local struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// Server holds settings of the record API HTTP server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's record API connection settings.
type Adapter struct {
	// HTTPAddress is the record API address, "host:port" or a full base URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Retries is the number of retries on transport errors and 5xx responses.
	// Env: ADAPTER_RETRIES
	Retries int `env:"RETRIES"`

	// ClientID and ClientSecret are exchanged for an access token.
	// Env: ADAPTER_CLIENT_ID, ADAPTER_CLIENT_SECRET
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// Sync configures the sync coordinator.
type Sync struct {
	// ObjectName is the remote record type.
	// Env: SYNC_OBJECT_NAME
	ObjectName string `env:"OBJECT_NAME"`

	// SoupName is the local collection mirroring ObjectName.
	// Env: SYNC_SOUP_NAME
	SoupName string `env:"SOUP_NAME"`

	// FieldList is the ordered list of remote fields pulled on sync down.
	// Env: SYNC_FIELD_LIST (comma separated)
	FieldList []string `env:"FIELD_LIST" envSeparator:","`

	// RecordLimit caps the rows of a single sync down.
	// Env: SYNC_RECORD_LIMIT
	RecordLimit int `env:"RECORD_LIMIT"`
}

// Workers holds background worker settings.
type Workers struct {
	// SyncInterval is the period of the background refresh.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Log holds client log file settings.
type Log struct {
	// FilePath of the rotating client log.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`

	MaxSizeMB  int `env:"MAX_SIZE_MB"`
	MaxBackups int `env:"MAX_BACKUPS"`
	MaxAgeDays int `env:"MAX_AGE_DAYS"`
}

// GetStructuredConfig loads and merges the configuration from all sources.
// For every field the first source providing a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
