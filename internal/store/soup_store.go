// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type soupStore struct {
	*DB
	logger *logger.Logger

	mu      sync.RWMutex
	schemas map[string]*soupSchema

	now func() time.Time
}

// NewSoupStore returns the SQLite-backed [SoupStore]. The soups registry
// table must already exist, see [DB.Migrate].
func NewSoupStore(db *DB, logger *logger.Logger) SoupStore {
	return &soupStore{
		DB:      db,
		logger:  logger,
		schemas: make(map[string]*soupSchema),
		now:     time.Now,
	}
}

func (s *soupStore) RegisterSoup(ctx context.Context, soupName string, indexSpecs []models.IndexSpec) error {
	log := logger.FromContext(ctx)

	schema, err := newSoupSchema(soupName, indexSpecs)
	if err != nil {
		log.Err(err).Str("func", "*soupStore.RegisterSoup").Str("soup", soupName).Msg("invalid soup definition")
		return err
	}

	exists, err := s.SoupExists(ctx, soupName)
	if err != nil {
		return err
	}
	if exists {
		log.Debug().Str("func", "*soupStore.RegisterSoup").Str("soup", soupName).Msg("soup already registered")
		return nil
	}

	specs, err := json.Marshal(schema.indexes)
	if err != nil {
		return fmt.Errorf("error encoding index specs: %w", err)
	}

	err = s.withRetry(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			for _, stmt := range schema.ddl() {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
				}
			}
			if _, err := tx.ExecContext(ctx, insertSoupRegistry, soupName, string(specs)); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).Str("func", "*soupStore.RegisterSoup").Str("soup", soupName).Msg("failed to register soup")
		return err
	}

	s.mu.Lock()
	s.schemas[soupName] = schema
	s.mu.Unlock()

	log.Info().Str("func", "*soupStore.RegisterSoup").Str("soup", soupName).Int("indexes", len(schema.indexes)).Msg("soup registered")
	return nil
}

func (s *soupStore) SoupExists(ctx context.Context, soupName string) (bool, error) {
	s.mu.RLock()
	_, cached := s.schemas[soupName]
	s.mu.RUnlock()
	if cached {
		return true, nil
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, selectSoupExists, soupName).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*soupStore.SoupExists").Str("soup", soupName).Msg("failed to query soup registry")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

func (s *soupStore) Upsert(ctx context.Context, soupName string, records []models.Record) ([]models.Record, error) {
	return s.upsert(ctx, soupName, "", records)
}

func (s *soupStore) UpsertWithExternalID(ctx context.Context, soupName, externalIDPath string, records []models.Record) ([]models.Record, error) {
	return s.upsert(ctx, soupName, externalIDPath, records)
}

func (s *soupStore) upsert(ctx context.Context, soupName, externalIDPath string, records []models.Record) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	schema, err := s.schema(ctx, soupName)
	if err != nil {
		return nil, err
	}
	if externalIDPath != "" {
		if _, _, ok := schema.column(externalIDPath); !ok {
			return nil, fmt.Errorf("%w: %q", ErrPathNotIndexed, externalIDPath)
		}
	}

	var saved []models.Record
	err = s.withRetry(ctx, func() error {
		saved = make([]models.Record, 0, len(records))
		return s.inTx(ctx, func(tx *sql.Tx) error {
			for _, record := range records {
				out, err := s.upsertOne(ctx, tx, schema, externalIDPath, record)
				if err != nil {
					return err
				}
				saved = append(saved, out)
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).Str("func", "*soupStore.upsert").Str("soup", soupName).Int("records", len(records)).Msg("failed to upsert records")
		return nil, err
	}

	return saved, nil
}

func (s *soupStore) upsertOne(ctx context.Context, tx *sql.Tx, schema *soupSchema, externalIDPath string, record models.Record) (models.Record, error) {
	now := s.now().UnixMilli()

	out := record.Clone()
	if out == nil {
		out = models.Record{}
	}
	out[models.FieldSoupLastModifiedDate] = now

	id, hasID := out.SoupEntryID()
	if !hasID && externalIDPath != "" {
		found, ok, err := s.findByIndex(ctx, tx, schema, externalIDPath, out)
		if err != nil {
			return nil, err
		}
		id, hasID = found, ok
	}

	blob, err := encodeEntry(out)
	if err != nil {
		return nil, err
	}

	if hasID {
		query, args, err := buildSoupUpdateQuery(schema, id, blob, now, out)
		if err != nil {
			return nil, err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		} else if n == 0 {
			return nil, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
		}
	} else {
		query, args, err := buildSoupInsertQuery(schema, blob, now, out)
		if err != nil {
			return nil, err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if schema.hasFullText() {
		if err := s.reindex(ctx, tx, schema, id, out); err != nil {
			return nil, err
		}
	}

	out.SetSoupEntryID(id)
	return out, nil
}

func (s *soupStore) findByIndex(ctx context.Context, tx *sql.Tx, schema *soupSchema, path string, record models.Record) (int64, bool, error) {
	_, spec, _ := schema.column(path)
	value := indexValue(valueAt(record, path), spec.Type)
	if value == nil {
		return 0, false, nil
	}

	query, args, err := buildSelectIDByIndexQuery(schema, path, value)
	if err != nil {
		return 0, false, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return id, true, nil
}

func (s *soupStore) reindex(ctx context.Context, tx *sql.Tx, schema *soupSchema, id int64, record models.Record) error {
	query, args, err := buildFTSDeleteQuery(schema, []int64{id})
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = buildFTSInsertQuery(schema, id, record)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *soupStore) Remove(ctx context.Context, soupName string, soupEntryIDs []int64) error {
	log := logger.FromContext(ctx)

	schema, err := s.schema(ctx, soupName)
	if err != nil {
		return err
	}
	if len(soupEntryIDs) == 0 {
		return nil
	}

	err = s.withRetry(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			query, args, err := buildSoupDeleteQuery(schema, soupEntryIDs)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			if !schema.hasFullText() {
				return nil
			}
			query, args, err = buildFTSDeleteQuery(schema, soupEntryIDs)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).Str("func", "*soupStore.Remove").Str("soup", soupName).Ints64("ids", soupEntryIDs).Msg("failed to remove soup entries")
		return err
	}

	return nil
}

func (s *soupStore) Query(ctx context.Context, soupName string, spec models.QuerySpec) (models.Page, error) {
	return s.QueryPage(ctx, soupName, spec, 0)
}

func (s *soupStore) QueryPage(ctx context.Context, soupName string, spec models.QuerySpec, pageIndex int) (models.Page, error) {
	log := logger.FromContext(ctx)

	schema, err := s.schema(ctx, soupName)
	if err != nil {
		return models.Page{}, err
	}

	query, args, err := buildSoupSelectQuery(schema, spec, pageIndex)
	if err != nil {
		log.Err(err).Str("func", "*soupStore.QueryPage").Str("soup", soupName).Msg("invalid query spec")
		return models.Page{}, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*soupStore.QueryPage").Str("soup", soupName).Msg("failed to query soup")
		return models.Page{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.Record, 0)
	for rows.Next() {
		var (
			id   int64
			blob string
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return models.Page{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entry, err := decodeEntry(blob)
		if err != nil {
			return models.Page{}, err
		}
		entry.SetSoupEntryID(id)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*soupStore.QueryPage").Str("soup", soupName).Msg("error occurred during rows iteration")
		return models.Page{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.Page{
		Entries:   entries,
		PageIndex: pageIndex,
		PageSize:  spec.PageSize,
	}, nil
}

// schema returns the cached schema of soupName, loading it from the
// registry on first use.
func (s *soupStore) schema(ctx context.Context, soupName string) (*soupSchema, error) {
	s.mu.RLock()
	schema, ok := s.schemas[soupName]
	s.mu.RUnlock()
	if ok {
		return schema, nil
	}

	var specsJSON string
	err := s.DB.QueryRowContext(ctx, selectSoupSpecs, soupName).Scan(&specsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSoupNotFound, soupName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var specs []models.IndexSpec
	if err := json.Unmarshal([]byte(specsJSON), &specs); err != nil {
		return nil, fmt.Errorf("error decoding index specs of soup %q: %w", soupName, err)
	}
	schema, err = newSoupSchema(soupName, specs)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.schemas[soupName] = schema
	s.mu.Unlock()

	return schema, nil
}

// encodeEntry serializes a record for the soup column. _soupEntryId lives in
// the id column only.
func encodeEntry(record models.Record) (string, error) {
	body := record.Clone()
	delete(body, models.FieldSoupEntryID)

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("error encoding soup entry: %w", err)
	}
	return string(b), nil
}

func decodeEntry(blob string) (models.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(blob)))
	dec.UseNumber()

	var entry models.Record
	if err := dec.Decode(&entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingEntry, err)
	}
	return entry, nil
}
