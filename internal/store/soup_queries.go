// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

const (
	selectSoupExists   = `SELECT COUNT(1) FROM soups WHERE name = ?`
	selectSoupSpecs    = `SELECT index_specs FROM soups WHERE name = ?`
	insertSoupRegistry = `INSERT OR IGNORE INTO soups (name, index_specs) VALUES (?, ?)`
)

// soupBuilder renders SQLite statements.
var soupBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// pathRefPattern matches {soup:Path} references in match expressions.
var pathRefPattern = regexp.MustCompile(`\{([^:{}]+):([^{}]+)\}`)

// translateMatchExpression rewrites {soup:Path} references into the
// full-text column names of the soup.
func translateMatchExpression(s *soupSchema, expr string) (string, error) {
	if expr == "" {
		return "", fmt.Errorf("%w: empty match expression", ErrInvalidQuerySpec)
	}

	var translateErr error
	out := pathRefPattern.ReplaceAllStringFunc(expr, func(ref string) string {
		m := pathRefPattern.FindStringSubmatch(ref)
		if m[1] != s.name {
			translateErr = fmt.Errorf("%w: expression references soup %q", ErrInvalidQuerySpec, m[1])
			return ref
		}
		col, spec, ok := s.column(m[2])
		if !ok || spec.Type != models.IndexTypeFullText {
			translateErr = fmt.Errorf("%w: %q has no full_text index", ErrPathNotIndexed, m[2])
			return ref
		}
		return col
	})
	if translateErr != nil {
		return "", translateErr
	}

	return out, nil
}

// buildSoupSelectQuery renders one page of a soup query.
func buildSoupSelectQuery(s *soupSchema, spec models.QuerySpec, pageIndex int) (string, []any, error) {
	if spec.PageSize <= 0 {
		return "", nil, fmt.Errorf("%w: page size must be positive", ErrInvalidQuerySpec)
	}
	if pageIndex < 0 {
		return "", nil, fmt.Errorf("%w: negative page index", ErrInvalidQuerySpec)
	}

	table := s.table()
	builder := soupBuilder.
		Select(table+".id", table+".soup").
		From(table)

	switch spec.QueryType {
	case models.QueryTypeAll:
	case models.QueryTypeExact:
		col, _, ok := s.column(spec.IndexPath)
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrPathNotIndexed, spec.IndexPath)
		}
		builder = builder.Where(sq.Eq{table + "." + col: spec.MatchKey})
	case models.QueryTypeMatch:
		if !s.hasFullText() {
			return "", nil, fmt.Errorf("%w: soup %q has no full_text index", ErrPathNotIndexed, s.name)
		}
		expr, err := translateMatchExpression(s, spec.MatchExpression)
		if err != nil {
			return "", nil, err
		}
		fts := s.ftsTable()
		builder = builder.
			Join(fmt.Sprintf("%s ON %s.docid = %s.id", fts, fts, table)).
			Where(fts+" MATCH ?", expr)
	default:
		return "", nil, fmt.Errorf("%w: unknown query type %q", ErrInvalidQuerySpec, spec.QueryType)
	}

	if spec.OrderPath != "" {
		col, _, ok := s.column(spec.OrderPath)
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrPathNotIndexed, spec.OrderPath)
		}
		dir := "ASC"
		if spec.Order == models.OrderDescending {
			dir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s.%s %s", table, col, dir))
	}

	query, args, err := builder.
		OrderBy(table + ".id ASC").
		Limit(uint64(spec.PageSize)).
		Offset(uint64(pageIndex * spec.PageSize)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSoupInsertQuery(s *soupSchema, blob string, now int64, record models.Record) (string, []any, error) {
	columns := append([]string{"soup", "created", "last_modified"}, s.indexColumns()...)
	values := append([]any{blob, now, now}, s.indexValues(record)...)

	query, args, err := soupBuilder.Insert(s.table()).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSoupUpdateQuery(s *soupSchema, id int64, blob string, now int64, record models.Record) (string, []any, error) {
	builder := soupBuilder.Update(s.table()).
		Set("soup", blob).
		Set("last_modified", now)
	for i, v := range s.indexValues(record) {
		builder = builder.Set(columnName(s.indexes[i].Path), v)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectIDByIndexQuery(s *soupSchema, path string, value any) (string, []any, error) {
	col, _, ok := s.column(path)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrPathNotIndexed, path)
	}

	query, args, err := soupBuilder.Select("id").From(s.table()).
		Where(sq.Eq{col: value}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFTSDeleteQuery(s *soupSchema, ids []int64) (string, []any, error) {
	query, args, err := soupBuilder.Delete(s.ftsTable()).Where(sq.Eq{"docid": ids}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFTSInsertQuery(s *soupSchema, id int64, record models.Record) (string, []any, error) {
	columns := append([]string{"docid"}, s.fullTextColumns()...)
	values := append([]any{id}, s.fullTextValues(record)...)

	query, args, err := soupBuilder.Insert(s.ftsTable()).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSoupDeleteQuery(s *soupSchema, ids []int64) (string, []any, error) {
	query, args, err := soupBuilder.Delete(s.table()).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
