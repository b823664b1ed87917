// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
)

const maxRetries = 3

// DB wraps a *sql.DB with the error classifier of its driver and the
// migration set of its schema.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	migrate            func(*sql.DB) error
	logger             *logger.Logger
}

// Migrate applies the schema migrations matching the driver.
func (db *DB) Migrate() error {
	return db.migrate(db.DB)
}

// withRetry runs op and retries it while the classifier reports a transient
// failure. op must be safe to re-run from scratch, which is why callers pass
// a whole transaction.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable || attempt == maxRetries {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*DB.withRetry").
			Int("attempt", attempt+1).
			Msg("retrying transient database error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}

	return err
}

// inTx runs fn in a transaction, committing when fn succeeds.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
