// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
)

type stubClassifier struct {
	class ErrorClassification
}

func (s stubClassifier) Classify(error) ErrorClassification { return s.class }

func TestDB_withRetry(t *testing.T) {
	transient := errors.New("transient")

	tests := []struct {
		name         string
		class        ErrorClassification
		failures     int
		wantAttempts int
		wantErr      bool
	}{
		{name: "success first try", class: Retryable, failures: 0, wantAttempts: 1},
		{name: "recovers after retries", class: Retryable, failures: 2, wantAttempts: 3},
		{name: "gives up", class: Retryable, failures: 10, wantAttempts: maxRetries + 1, wantErr: true},
		{name: "non retryable", class: NonRetryable, failures: 10, wantAttempts: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &DB{errorClassificator: stubClassifier{class: tt.class}, logger: logger.Nop()}

			attempts := 0
			err := db.withRetry(context.Background(), func() error {
				attempts++
				if attempts <= tt.failures {
					return transient
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr {
				assert.ErrorIs(t, err, transient)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_withRetry_ContextCanceled(t *testing.T) {
	db := &DB{errorClassificator: stubClassifier{class: Retryable}, logger: logger.Nop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.withRetry(ctx, func() error { return errors.New("busy") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("%w: %w", ErrExecutingStatement, sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.Equal(t, NonRetryable, c.Classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, pgerrcode.UniqueViolation, postgresError(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})))
}
