// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
)

// ClientStorages groups the client-side repositories sharing one SQLite
// database.
type ClientStorages struct {
	SoupStore           SoupStore
	SyncStateRepository SyncStateRepository

	db *DB
}

// NewClientStorages opens the local database, applies migrations and wires
// the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SoupStore:           NewSoupStore(db, logger),
		SyncStateRepository: NewSyncStateRepository(db, logger),
		db:                  db,
	}, nil
}

// Close releases the database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}

// ServerStorages groups the record API repositories.
type ServerStorages struct {
	RecordRepository RecordRepository

	db *DB
}

// NewServerStorages connects to PostgreSQL, applies migrations and wires the
// repositories.
func NewServerStorages(ctx context.Context, cfg config.ServerDB, logger *logger.Logger) (*ServerStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ServerStorages{
		RecordRepository: NewRecordRepository(db, logger),
		db:               db,
	}, nil
}

// Close releases the database.
func (s *ServerStorages) Close() error {
	return s.db.Close()
}
