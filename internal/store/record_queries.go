// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

// defaultRecordQueryLimit caps a query that does not set its own limit.
const defaultRecordQueryLimit = 10000

var recordColumns = []string{"id", "object_name", "fields", "created_at", "last_modified"}

// pgBuilder renders PostgreSQL statements.
var pgBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildSelectRecordsQuery(ctx context.Context, objectName string, req models.QueryRequest) (string, []any, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecordQueryLimit
	}

	builder := pgBuilder.
		Select(recordColumns...).
		From("records").
		Where(sq.Eq{"object_name": objectName})
	if req.ModifiedSince != nil {
		builder = builder.Where(sq.Gt{"last_modified": req.ModifiedSince.UTC()})
	}

	query, args, err := builder.
		OrderBy("last_modified ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertRecordQuery(ctx context.Context, record models.RemoteRecord, fields string) (string, []any, error) {
	query, args, err := pgBuilder.
		Insert("records").
		Columns("id", "object_name", "fields").
		Values(record.ID, record.ObjectName, fields).
		Suffix("RETURNING created_at, last_modified").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateRecordQuery merges fields into the stored JSON document, so
// fields absent from the update keep their value.
func buildUpdateRecordQuery(ctx context.Context, objectName, id, fields string) (string, []any, error) {
	query, args, err := pgBuilder.
		Update("records").
		Set("fields", sq.Expr("fields || ?::jsonb", fields)).
		Set("last_modified", sq.Expr("NOW()")).
		Where(sq.Eq{"object_name": objectName}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, object_name, fields, created_at, last_modified").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteRecordQuery(ctx context.Context, objectName, id string) (string, []any, error) {
	query, args, err := pgBuilder.
		Delete("records").
		Where(sq.Eq{"object_name": objectName}).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
