// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

const (
	insertSyncState = `INSERT INTO sync_states (type, target, options, soup_name, status, progress, total_size, max_time_stamp, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateSyncState = `UPDATE sync_states
		SET status = ?, progress = ?, total_size = ?, max_time_stamp = ?, error = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	selectSyncState = `SELECT id, type, target, options, soup_name, status, progress, total_size, max_time_stamp, error
		FROM sync_states
		WHERE id = ?`

	// A sync down is resumable once it completed or recorded a timestamp.
	selectLatestSyncDown = `SELECT id, type, target, options, soup_name, status, progress, total_size, max_time_stamp, error
		FROM sync_states
		WHERE soup_name = ? AND type = ? AND target IS NOT NULL AND (status = ? OR max_time_stamp IS NOT NULL)
		ORDER BY id DESC
		LIMIT 1`

	deleteSyncStatesExcept = `DELETE FROM sync_states WHERE soup_name = ? AND type = ? AND id <> ?`
)

type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncStateRepository returns the SQLite-backed [SyncStateRepository].
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *syncStateRepository) Create(ctx context.Context, state models.SyncState) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	target, options, err := encodeSyncTarget(state)
	if err != nil {
		return models.SyncState{}, err
	}

	res, err := r.DB.ExecContext(ctx, insertSyncState,
		string(state.Type),
		target,
		options,
		state.SoupName,
		string(state.Status),
		state.Progress,
		state.TotalSize,
		nullTime(state),
		state.Error,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*syncStateRepository.Create").
			Str("soup", state.SoupName).
			Msg("failed to insert sync state")
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	state.ID = id

	return state, nil
}

func (r *syncStateRepository) Update(ctx context.Context, state models.SyncState) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, updateSyncState,
		string(state.Status),
		state.Progress,
		state.TotalSize,
		nullTime(state),
		state.Error,
		state.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*syncStateRepository.Update").
			Int64("sync_id", state.ID).
			Msg("failed to update sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrSyncStateNotFound, state.ID)
	}

	return nil
}

func (r *syncStateRepository) Get(ctx context.Context, syncID int64) (models.SyncState, error) {
	state, err := scanSyncState(r.DB.QueryRowContext(ctx, selectSyncState, syncID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, fmt.Errorf("%w: %d", ErrSyncStateNotFound, syncID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncStateRepository.Get").
			Int64("sync_id", syncID).
			Msg("failed to read sync state")
		return models.SyncState{}, err
	}

	return state, nil
}

func (r *syncStateRepository) LatestSyncDown(ctx context.Context, soupName string) (models.SyncState, error) {
	row := r.DB.QueryRowContext(ctx, selectLatestSyncDown,
		soupName,
		string(models.SyncTypeDown),
		string(models.SyncStatusDone),
	)

	state, err := scanSyncState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, fmt.Errorf("%w: no sync down for soup %s", ErrSyncStateNotFound, soupName)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncStateRepository.LatestSyncDown").
			Str("soup", soupName).
			Msg("failed to read latest sync down")
		return models.SyncState{}, err
	}

	return state, nil
}

func (r *syncStateRepository) Prune(ctx context.Context, soupName string, syncType models.SyncType, keepID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, deleteSyncStatesExcept, soupName, string(syncType), keepID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncStateRepository.Prune").
			Str("soup", soupName).
			Str("type", string(syncType)).
			Msg("failed to prune sync states")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

// scanSyncState reads one sync_states row. sql.ErrNoRows is returned as is.
func scanSyncState(row rowScanner) (models.SyncState, error) {
	var (
		state        models.SyncState
		syncType     string
		status       string
		target       sql.NullString
		options      string
		maxTimeStamp sql.NullTime
	)
	err := row.Scan(
		&state.ID,
		&syncType,
		&target,
		&options,
		&state.SoupName,
		&status,
		&state.Progress,
		&state.TotalSize,
		&maxTimeStamp,
		&state.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, err
	}
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	state.Type = models.SyncType(syncType)
	state.Status = models.SyncStatus(status)
	if target.Valid && target.String != "" {
		state.Target = new(models.SyncDownTarget)
		if err := json.Unmarshal([]byte(target.String), state.Target); err != nil {
			return models.SyncState{}, fmt.Errorf("error decoding sync target: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(options), &state.Options); err != nil {
		return models.SyncState{}, fmt.Errorf("error decoding sync options: %w", err)
	}
	if maxTimeStamp.Valid {
		ts := maxTimeStamp.Time.UTC()
		state.MaxTimeStamp = &ts
	}

	return state, nil
}

func encodeSyncTarget(state models.SyncState) (sql.NullString, string, error) {
	var target sql.NullString
	if state.Target != nil {
		b, err := json.Marshal(state.Target)
		if err != nil {
			return target, "", fmt.Errorf("error encoding sync target: %w", err)
		}
		target = sql.NullString{String: string(b), Valid: true}
	}

	options, err := json.Marshal(state.Options)
	if err != nil {
		return target, "", fmt.Errorf("error encoding sync options: %w", err)
	}

	return target, string(options), nil
}

func nullTime(state models.SyncState) sql.NullTime {
	if state.MaxTimeStamp == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: state.MaxTimeStamp.UTC(), Valid: true}
}
