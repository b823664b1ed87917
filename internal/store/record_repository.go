// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository returns the PostgreSQL-backed [RecordRepository].
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordRepository) Query(ctx context.Context, objectName string, req models.QueryRequest) ([]models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecordsQuery(ctx, objectName, req)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Query").Msg("error building query")
		return nil, err
	}

	var records []models.RemoteRecord
	err = r.withRetry(ctx, func() error {
		rows, err := r.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		records = make([]models.RemoteRecord, 0)
		for rows.Next() {
			record, err := scanRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.Query").
			Str("object", objectName).
			Msg("failed to query records")
		return nil, err
	}

	return records, nil
}

func (r *recordRepository) Create(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	fields, err := json.Marshal(record.Fields)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("error encoding record fields: %w", err)
	}

	query, args, err := buildInsertRecordQuery(ctx, record, string(fields))
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Create").Msg("error building query")
		return models.RemoteRecord{}, err
	}

	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&record.CreatedAt, &record.LastModifiedDate)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.RemoteRecord{}, fmt.Errorf("%w: %s", ErrRecordAlreadyExists, record.ID)
		}
		log.Err(err).
			Str("func", "*recordRepository.Create").
			Str("object", record.ObjectName).
			Str("id", record.ID).
			Msg("failed to insert record")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

func (r *recordRepository) Update(ctx context.Context, objectName, id string, fields models.Record) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	encoded, err := json.Marshal(fields)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("error encoding record fields: %w", err)
	}

	query, args, err := buildUpdateRecordQuery(ctx, objectName, id, string(encoded))
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Update").Msg("error building query")
		return models.RemoteRecord{}, err
	}

	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.Update").
			Str("object", objectName).
			Str("id", id).
			Msg("failed to update record")
		return models.RemoteRecord{}, err
	}

	return record, nil
}

func (r *recordRepository) Delete(ctx context.Context, objectName, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(ctx, objectName, id)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Delete").Msg("error building query")
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.Delete").
			Str("object", objectName).
			Str("id", id).
			Msg("failed to delete record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.RemoteRecord, error) {
	var (
		record models.RemoteRecord
		fields []byte
	)
	err := row.Scan(&record.ID, &record.ObjectName, &fields, &record.CreatedAt, &record.LastModifiedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteRecord{}, err
	}
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	entry, err := decodeEntry(string(fields))
	if err != nil {
		return models.RemoteRecord{}, err
	}
	record.Fields = entry

	return record, nil
}
