// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contacts-keeper/internal/adapter"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

// dirtyPageSize is the page size used to collect records pending a sync up.
const dirtyPageSize = 100

type syncEngine struct {
	adapter    adapter.RecordAdapter
	soups      store.SoupStore
	syncStates store.SyncStateRepository

	// objectName is used for dirty records without attributes.type.
	objectName string

	logger *logger.Logger
}

// NewSyncEngine returns the [RemoteSync] implementation backed by the record
// API adapter and the local soup store.
func NewSyncEngine(storages *store.ClientStorages, recordAdapter adapter.RecordAdapter, objectName string, logger *logger.Logger) RemoteSync {
	return &syncEngine{
		adapter:    recordAdapter,
		soups:      storages.SoupStore,
		syncStates: storages.SyncStateRepository,
		objectName: objectName,
		logger:     logger,
	}
}

func (s *syncEngine) SyncDown(ctx context.Context, target models.SyncDownTarget, soupName string, options models.SyncOptions) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	if err := checkMergeMode(options); err != nil {
		return models.SyncState{}, err
	}
	if target.Type != models.TargetTypeQuery || target.ObjectName == "" || len(target.Fields) == 0 {
		return models.SyncState{}, fmt.Errorf("%w: %+v", ErrInvalidSyncTarget, target)
	}

	state, err := s.syncStates.Create(ctx, models.SyncState{
		Type:     models.SyncTypeDown,
		Target:   &target,
		Options:  options,
		SoupName: soupName,
		Status:   models.SyncStatusRunning,
	})
	if err != nil {
		return models.SyncState{}, fmt.Errorf("create sync state: %w", err)
	}

	log.Info().
		Str("func", "*syncEngine.SyncDown").
		Int64("sync_id", state.ID).
		Str("query", target.Query()).
		Msg("sync down started")

	state, err = s.pull(ctx, state)
	if err != nil {
		return state, err
	}

	// the new sync down supersedes the older ones of the soup
	s.prune(ctx, soupName, models.SyncTypeDown, state.ID)
	return state, nil
}

func (s *syncEngine) ReSync(ctx context.Context, syncID int64) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	state, err := s.syncStates.Get(ctx, syncID)
	if err != nil {
		return models.SyncState{}, fmt.Errorf("get sync state: %w", err)
	}
	if state.Type != models.SyncTypeDown || state.Target == nil {
		return models.SyncState{}, fmt.Errorf("%w: %d", ErrNotSyncDown, syncID)
	}

	state.Status = models.SyncStatusRunning
	state.Progress = 0
	state.Error = ""
	if err = s.syncStates.Update(ctx, state); err != nil {
		return models.SyncState{}, fmt.Errorf("update sync state: %w", err)
	}

	event := log.Info().Str("func", "*syncEngine.ReSync").Int64("sync_id", state.ID)
	if state.MaxTimeStamp != nil {
		event = event.Time("modified_since", *state.MaxTimeStamp)
	}
	event.Msg("re-sync started")

	return s.pull(ctx, state)
}

// pull fetches the records of the state's target modified after its
// MaxTimeStamp and overwrites their local copies.
func (s *syncEngine) pull(ctx context.Context, state models.SyncState) (models.SyncState, error) {
	target := state.Target

	records, err := s.adapter.Query(ctx, target.ObjectName, models.QueryRequest{
		Fields:        target.Fields,
		Limit:         target.Limit,
		ModifiedSince: state.MaxTimeStamp,
	})
	if err != nil {
		return s.fail(ctx, state, fmt.Errorf("query %s: %w", target.ObjectName, mapAdapterError(err)))
	}

	maxTimeStamp := state.MaxTimeStamp
	for _, record := range records {
		record.ClearLocalFlags()
		if ts, ok := record.Time(models.FieldLastModifiedDate); ok {
			if maxTimeStamp == nil || ts.After(*maxTimeStamp) {
				ts := ts.UTC()
				maxTimeStamp = &ts
			}
		}
	}

	if len(records) > 0 {
		if _, err = s.soups.UpsertWithExternalID(ctx, state.SoupName, models.FieldID, records); err != nil {
			return s.fail(ctx, state, fmt.Errorf("save pulled records: %w", err))
		}
	}

	state.MaxTimeStamp = maxTimeStamp
	state.TotalSize = len(records)
	return s.complete(ctx, state)
}

func (s *syncEngine) SyncUp(ctx context.Context, soupName string, options models.SyncOptions) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	if err := checkMergeMode(options); err != nil {
		return models.SyncState{}, err
	}

	state, err := s.syncStates.Create(ctx, models.SyncState{
		Type:     models.SyncTypeUp,
		Options:  options,
		SoupName: soupName,
		Status:   models.SyncStatusRunning,
	})
	if err != nil {
		return models.SyncState{}, fmt.Errorf("create sync state: %w", err)
	}

	defer s.prune(ctx, soupName, models.SyncTypeUp, state.ID)

	dirty, err := s.dirtyRecords(ctx, soupName)
	if err != nil {
		return s.fail(ctx, state, err)
	}
	state.TotalSize = len(dirty)

	log.Info().
		Str("func", "*syncEngine.SyncUp").
		Int64("sync_id", state.ID).
		Int("dirty", len(dirty)).
		Msg("sync up started")

	var rejected []string
	for i, record := range dirty {
		err = s.push(ctx, soupName, options.FieldList, record)
		switch {
		case err == nil:
		case errors.Is(err, adapter.ErrBadRequest):
			if err = s.reject(ctx, soupName, record, err); err != nil {
				return s.fail(ctx, state, err)
			}
			rejected = append(rejected, record.ID())
		default:
			return s.fail(ctx, state, err)
		}
		state.Progress = (i + 1) * 100 / len(dirty)
	}

	if len(rejected) > 0 {
		state.Rejected = len(rejected)
		state.Error = fmt.Sprintf("%s: %s", ErrRecordsRejected, strings.Join(rejected, ", "))
	}

	return s.complete(ctx, state)
}

// reject keeps a record the remote system refused dirty and stores the
// reason on it, so the rest of the sync up can proceed.
func (s *syncEngine) reject(ctx context.Context, soupName string, record models.Record, cause error) error {
	logger.FromContext(ctx).Warn().
		Err(cause).
		Str("func", "*syncEngine.reject").
		Str("id", record.ID()).
		Msg("record rejected by the server")

	record[models.FieldSyncError] = cause.Error()
	if _, err := s.soups.Upsert(ctx, soupName, []models.Record{record}); err != nil {
		return fmt.Errorf("save rejected record: %w", err)
	}
	return nil
}

// prune drops the sync states superseded by keepID. Failures are only logged.
func (s *syncEngine) prune(ctx context.Context, soupName string, syncType models.SyncType, keepID int64) {
	n, err := s.syncStates.Prune(ctx, soupName, syncType, keepID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncEngine.prune").
			Str("soup", soupName).
			Str("type", string(syncType)).
			Msg("failed to prune sync states")
		return
	}
	if n > 0 {
		logger.FromContext(ctx).Debug().
			Str("func", "*syncEngine.prune").
			Str("type", string(syncType)).
			Int64("removed", n).
			Msg("pruned sync states")
	}
}

func (s *syncEngine) dirtyRecords(ctx context.Context, soupName string) ([]models.Record, error) {
	spec := models.ExactQuery(models.FieldLocal, "true", models.FieldID, models.OrderAscending, dirtyPageSize)

	var dirty []models.Record
	for pageIndex := 0; ; pageIndex++ {
		page, err := s.soups.QueryPage(ctx, soupName, spec, pageIndex)
		if err != nil {
			return nil, fmt.Errorf("query dirty records: %w", err)
		}
		dirty = append(dirty, page.Entries...)
		if len(page.Entries) < dirtyPageSize {
			return dirty, nil
		}
	}
}

// push reconciles one dirty record with the remote system.
func (s *syncEngine) push(ctx context.Context, soupName string, fieldList []string, record models.Record) error {
	log := logger.FromContext(ctx)

	entryID, ok := record.SoupEntryID()
	if !ok {
		return ErrRecordNotPersisted
	}
	objectName := s.recordObjectName(record)
	fields := record.Pick(fieldList)

	switch {
	case record.IsLocallyDeleted():
		if !record.IsLocallyCreated() && !record.HasLocalID() {
			err := s.adapter.Delete(ctx, objectName, record.ID())
			if err != nil && !errors.Is(err, adapter.ErrNotFound) {
				return fmt.Errorf("delete %s: %w", record.ID(), mapAdapterError(err))
			}
		}
		if err := s.soups.Remove(ctx, soupName, []int64{entryID}); err != nil {
			return fmt.Errorf("remove pushed record: %w", err)
		}
		log.Debug().Str("func", "*syncEngine.push").Str("id", record.ID()).Msg("deleted record pushed")
		return nil

	case record.IsLocallyCreated() || record.HasLocalID():
		id, err := s.create(ctx, objectName, fields)
		if err != nil {
			return err
		}
		record[models.FieldID] = id

	case record.IsLocallyUpdated():
		err := s.adapter.Update(ctx, objectName, record.ID(), fields)
		if errors.Is(err, adapter.ErrNotFound) {
			// OVERWRITE: the local copy wins over a remote delete.
			id, createErr := s.create(ctx, objectName, fields)
			if createErr != nil {
				return createErr
			}
			record[models.FieldID] = id
		} else if err != nil {
			return fmt.Errorf("update %s: %w", record.ID(), mapAdapterError(err))
		}
	}

	record.ClearLocalFlags()
	if _, err := s.soups.Upsert(ctx, soupName, []models.Record{record}); err != nil {
		return fmt.Errorf("save pushed record: %w", err)
	}

	log.Debug().Str("func", "*syncEngine.push").Str("id", record.ID()).Msg("record pushed")
	return nil
}

func (s *syncEngine) create(ctx context.Context, objectName string, fields models.Record) (string, error) {
	id, err := s.adapter.Create(ctx, objectName, fields)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", objectName, mapAdapterError(err))
	}
	if id == "" {
		return "", ErrMissingRemoteID
	}
	return id, nil
}

func (s *syncEngine) recordObjectName(record models.Record) string {
	switch attrs := record[models.FieldAttributes].(type) {
	case map[string]any:
		if t, ok := attrs["type"].(string); ok && t != "" {
			return t
		}
	case models.Attributes:
		if attrs.Type != "" {
			return attrs.Type
		}
	}
	return s.objectName
}

func (s *syncEngine) complete(ctx context.Context, state models.SyncState) (models.SyncState, error) {
	state.Status = models.SyncStatusDone
	state.Progress = 100
	if err := s.syncStates.Update(ctx, state); err != nil {
		return models.SyncState{}, fmt.Errorf("update sync state: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*syncEngine.complete").
		Int64("sync_id", state.ID).
		Str("type", string(state.Type)).
		Int("total", state.TotalSize).
		Int("rejected", state.Rejected).
		Msg("sync done")

	return state, nil
}

// fail marks the sync state FAILED and returns cause. Errors persisting the
// state are only logged.
func (s *syncEngine) fail(ctx context.Context, state models.SyncState, cause error) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	state.Status = models.SyncStatusFailed
	state.Error = cause.Error()
	if err := s.syncStates.Update(ctx, state); err != nil {
		log.Err(err).Str("func", "*syncEngine.fail").Int64("sync_id", state.ID).Msg("failed to persist failed sync state")
	}

	log.Err(cause).
		Str("func", "*syncEngine.fail").
		Int64("sync_id", state.ID).
		Str("type", string(state.Type)).
		Msg("sync failed")

	return state, cause
}

func checkMergeMode(options models.SyncOptions) error {
	if options.MergeMode != models.MergeModeOverwrite {
		return fmt.Errorf("%w: %q", ErrUnsupportedMergeMode, options.MergeMode)
	}
	return nil
}
