// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

var (
	soupNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	unsafeColumnRe  = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// soupSchema maps the index specs of one soup onto its SQL objects:
// soup_<name> holds the JSON entries and one column per index,
// soup_<name>_fts holds the full_text columns.
type soupSchema struct {
	name    string
	indexes []models.IndexSpec
	columns map[string]models.IndexSpec
}

func newSoupSchema(name string, indexes []models.IndexSpec) (*soupSchema, error) {
	if !soupNamePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSoupName, name)
	}
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: soup %q has no indexes", ErrInvalidIndexSpec, name)
	}

	s := &soupSchema{
		name:    name,
		indexes: make([]models.IndexSpec, 0, len(indexes)),
		columns: make(map[string]models.IndexSpec, len(indexes)),
	}
	for _, spec := range indexes {
		if spec.Path == "" {
			return nil, fmt.Errorf("%w: empty path", ErrInvalidIndexSpec)
		}
		switch spec.Type {
		case models.IndexTypeString, models.IndexTypeInteger, models.IndexTypeFullText:
		default:
			return nil, fmt.Errorf("%w: unknown type %q for path %q", ErrInvalidIndexSpec, spec.Type, spec.Path)
		}
		col := columnName(spec.Path)
		if _, dup := s.columns[col]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidIndexSpec, spec.Path)
		}
		s.columns[col] = spec
		s.indexes = append(s.indexes, spec)
	}

	return s, nil
}

func columnName(path string) string {
	return "i_" + unsafeColumnRe.ReplaceAllString(path, "_")
}

func (s *soupSchema) table() string    { return "soup_" + s.name }
func (s *soupSchema) ftsTable() string { return "soup_" + s.name + "_fts" }

// column returns the index column for path.
func (s *soupSchema) column(path string) (string, models.IndexSpec, bool) {
	col := columnName(path)
	spec, ok := s.columns[col]
	if !ok || spec.Path != path {
		return "", models.IndexSpec{}, false
	}
	return col, spec, true
}

func (s *soupSchema) indexColumns() []string {
	cols := make([]string, 0, len(s.indexes))
	for _, spec := range s.indexes {
		cols = append(cols, columnName(spec.Path))
	}
	return cols
}

func (s *soupSchema) fullTextColumns() []string {
	var cols []string
	for _, spec := range s.indexes {
		if spec.Type == models.IndexTypeFullText {
			cols = append(cols, columnName(spec.Path))
		}
	}
	return cols
}

func (s *soupSchema) hasFullText() bool {
	return len(s.fullTextColumns()) > 0
}

// ddl returns the statements creating the soup table, its indexes and its
// full-text table.
func (s *soupSchema) ddl() []string {
	cols := []string{
		"id INTEGER PRIMARY KEY AUTOINCREMENT",
		"soup TEXT NOT NULL",
		"created INTEGER NOT NULL",
		"last_modified INTEGER NOT NULL",
	}
	for _, spec := range s.indexes {
		sqlType := "TEXT"
		if spec.Type == models.IndexTypeInteger {
			sqlType = "INTEGER"
		}
		cols = append(cols, columnName(spec.Path)+" "+sqlType)
	}

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", s.table(), strings.Join(cols, ", ")),
	}
	for _, col := range s.indexColumns() {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_%s_idx ON %s (%s)", s.table(), col, s.table(), col))
	}
	if s.hasFullText() {
		stmts = append(stmts, fmt.Sprintf("CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts4(%s)", s.ftsTable(), strings.Join(s.fullTextColumns(), ", ")))
	}

	return stmts
}

// indexValues projects the record onto the index columns, in index order.
func (s *soupSchema) indexValues(record models.Record) []any {
	values := make([]any, 0, len(s.indexes))
	for _, spec := range s.indexes {
		values = append(values, indexValue(valueAt(record, spec.Path), spec.Type))
	}
	return values
}

func (s *soupSchema) fullTextValues(record models.Record) []any {
	var values []any
	for _, spec := range s.indexes {
		if spec.Type == models.IndexTypeFullText {
			values = append(values, indexValue(valueAt(record, spec.Path), spec.Type))
		}
	}
	return values
}

// valueAt resolves a dotted path through nested objects.
func valueAt(record models.Record, path string) any {
	var cur any = map[string]any(record)
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			cur = m[part]
		case models.Record:
			cur = m[part]
		default:
			return nil
		}
	}
	return cur
}

func indexValue(v any, typ models.IndexType) any {
	if v == nil {
		return nil
	}

	if typ == models.IndexTypeInteger {
		switch n := v.(type) {
		case int64:
			return n
		case int:
			return int64(n)
		case float64:
			return int64(n)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i
			}
		case bool:
			if n {
				return int64(1)
			}
			return int64(0)
		}
		return nil
	}

	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
