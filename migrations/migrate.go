// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds and applies the goose schema migrations of the
// client's local store and of the record API server.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// ErrNilDB is returned when a migration is requested without a connection.
var ErrNilDB = errors.New("migration error: db is nil")

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// MigrateClient applies the client schema (soup registry, sync states) to a
// SQLite database.
func MigrateClient(db *sql.DB) error {
	return migrate(db, "sqlite3", "client")
}

// MigrateServer applies the record API schema to a PostgreSQL database.
func MigrateServer(db *sql.DB) error {
	return migrate(db, "pgx", "server")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return ErrNilDB
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
