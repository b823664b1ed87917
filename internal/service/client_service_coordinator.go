// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/notifier"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

const (
	defaultRecordLimit = 10000
	searchPageSize     = 100
)

// SyncUpFieldList is the fixed set of fields pushed by a sync up.
var SyncUpFieldList = []string{
	models.FieldFirstName,
	models.FieldLastName,
	models.FieldTitle,
	models.FieldEmail,
	models.FieldMobilePhone,
	models.FieldDepartment,
	models.FieldHomePhone,
}

// ContactIndexSpecs are the indexes of the contacts soup.
var ContactIndexSpecs = []models.IndexSpec{
	{Path: models.FieldID, Type: models.IndexTypeString},
	{Path: models.FieldFirstName, Type: models.IndexTypeFullText},
	{Path: models.FieldLastName, Type: models.IndexTypeFullText},
	{Path: models.FieldLocal, Type: models.IndexTypeString},
}

type syncCoordinator struct {
	soups      store.SoupStore
	syncStates store.SyncStateRepository
	remote     RemoteSync
	notifier   notifier.ChangeNotifier

	objectName  string
	soupName    string
	fieldList   []string
	recordLimit int

	// syncInFlight admits at most one sync operation at a time.
	syncInFlight atomic.Bool

	syncMu     sync.Mutex
	syncDownID int64

	lastQuerySent        atomic.Uint64
	responseMu           sync.Mutex
	lastResponseReceived uint64

	idMu        sync.Mutex
	lastLocalID int64
	now         func() time.Time

	logger *logger.Logger
}

// NewSyncCoordinator builds the [SyncCoordinator] for one object type and
// its soup. A non-positive RecordLimit falls back to 10000.
func NewSyncCoordinator(cfg config.ClientSync, soups store.SoupStore, syncStates store.SyncStateRepository, remote RemoteSync, changes notifier.ChangeNotifier, logger *logger.Logger) SyncCoordinator {
	limit := cfg.RecordLimit
	if limit <= 0 {
		limit = defaultRecordLimit
	}

	return &syncCoordinator{
		soups:       soups,
		syncStates:  syncStates,
		remote:      remote,
		notifier:    changes,
		objectName:  cfg.ObjectName,
		soupName:    cfg.SoupName,
		fieldList:   append([]string(nil), cfg.FieldList...),
		recordLimit: limit,
		now:         time.Now,
		logger:      logger,
	}
}

func (c *syncCoordinator) InitializeAndSync(ctx context.Context) (models.SyncState, error) {
	if err := c.soups.RegisterSoup(ctx, c.soupName, ContactIndexSpecs); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncCoordinator.InitializeAndSync").
			Str("soup", c.soupName).
			Msg("failed to register soup")
		return models.SyncState{}, fmt.Errorf("register soup %s: %w", c.soupName, err)
	}
	c.restoreSyncDownID(ctx)

	return c.SyncDown(ctx)
}

// restoreSyncDownID resumes from the sync down persisted by an earlier run,
// so ReSync works even when the next SyncDown fails.
func (c *syncCoordinator) restoreSyncDownID(ctx context.Context) {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	if c.syncDownID != 0 {
		return
	}

	state, err := c.syncStates.LatestSyncDown(ctx, c.soupName)
	if errors.Is(err, store.ErrSyncStateNotFound) {
		return
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncCoordinator.restoreSyncDownID").
			Str("soup", c.soupName).
			Msg("failed to load last sync down")
		return
	}

	c.syncDownID = state.ID
	logger.FromContext(ctx).Debug().
		Str("func", "*syncCoordinator.restoreSyncDownID").
		Int64("sync_id", state.ID).
		Msg("restored sync down")
}

func (c *syncCoordinator) RefreshSync(ctx context.Context) (models.SyncState, error) {
	if _, err := c.SyncUp(ctx); err != nil {
		return models.SyncState{}, err
	}

	return c.ReSync(ctx)
}

func (c *syncCoordinator) SyncDown(ctx context.Context) (models.SyncState, error) {
	target := models.SyncDownTarget{
		Type:       models.TargetTypeQuery,
		ObjectName: c.objectName,
		Fields:     append(append([]string(nil), c.fieldList...), models.FieldID, models.FieldLastModifiedDate),
		Limit:      c.recordLimit,
	}

	state, err := c.exclusive(ctx, "SyncDown", func() (models.SyncState, error) {
		return c.remote.SyncDown(ctx, target, c.soupName, models.SyncOptions{MergeMode: models.MergeModeOverwrite})
	})
	if err != nil {
		return models.SyncState{}, err
	}

	c.syncMu.Lock()
	c.syncDownID = state.ID
	c.syncMu.Unlock()

	c.notifier.Publish(notifier.EventStoreChanged, state)
	return state, nil
}

func (c *syncCoordinator) ReSync(ctx context.Context) (models.SyncState, error) {
	c.syncMu.Lock()
	syncID := c.syncDownID
	c.syncMu.Unlock()

	if syncID == 0 {
		logger.FromContext(ctx).Warn().Str("func", "*syncCoordinator.ReSync").Msg("no sync down to resume")
		return models.SyncState{}, ErrNoSyncDown
	}

	state, err := c.exclusive(ctx, "ReSync", func() (models.SyncState, error) {
		return c.remote.ReSync(ctx, syncID)
	})
	if err != nil {
		return models.SyncState{}, err
	}

	c.notifier.Publish(notifier.EventStoreChanged, state)
	return state, nil
}

func (c *syncCoordinator) SyncUp(ctx context.Context) (models.SyncState, error) {
	options := models.SyncOptions{
		MergeMode: models.MergeModeOverwrite,
		FieldList: SyncUpFieldList,
	}

	return c.exclusive(ctx, "SyncUp", func() (models.SyncState, error) {
		return c.remote.SyncUp(ctx, c.soupName, options)
	})
}

// exclusive runs op unless another sync holds the gate. The gate is released
// before the caller publishes, so listeners may start the next sync.
func (c *syncCoordinator) exclusive(ctx context.Context, name string, op func() (models.SyncState, error)) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	if !c.syncInFlight.CompareAndSwap(false, true) {
		log.Info().Str("func", "*syncCoordinator."+name).Msg("sync already in progress, request dropped")
		return models.SyncState{}, ErrSyncInFlight
	}
	defer c.syncInFlight.Store(false)

	state, err := op()
	if err != nil {
		log.Err(err).Str("func", "*syncCoordinator."+name).Msg("sync failed")
		return models.SyncState{}, fmt.Errorf("%s: %w", strings.ToLower(name), err)
	}

	return state, nil
}

func (c *syncCoordinator) Search(ctx context.Context, query string) ([]models.Record, uint64, error) {
	spec := buildSearchSpec(c.soupName, query)
	ticket := c.lastQuerySent.Add(1)

	page, err := c.soups.Query(ctx, c.soupName, spec)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncCoordinator.Search").
			Str("query", query).
			Uint64("ticket", ticket).
			Msg("search failed")
		return nil, ticket, fmt.Errorf("search: %w", err)
	}

	c.responseMu.Lock()
	defer c.responseMu.Unlock()
	if ticket <= c.lastResponseReceived {
		return nil, ticket, ErrStaleResponse
	}
	c.lastResponseReceived = ticket

	return page.Entries, ticket, nil
}

// buildSearchSpec maps the search box text onto a soup query: everything
// for an empty box, first AND last name prefixes for two words, otherwise
// a prefix on either name.
func buildSearchSpec(soupName, query string) models.QuerySpec {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.AllQuery(models.FieldFirstName, models.OrderAscending, searchPageSize)
	}

	var expr string
	if words := strings.Fields(query); len(words) == 2 {
		expr = fmt.Sprintf("{%s:%s}:%s* AND {%s:%s}:%s*",
			soupName, models.FieldFirstName, words[0],
			soupName, models.FieldLastName, words[1])
	} else {
		expr = fmt.Sprintf("{%s:%s}:%s* OR {%s:%s}:%s*",
			soupName, models.FieldFirstName, query,
			soupName, models.FieldLastName, query)
	}

	return models.MatchQuery(expr, models.FieldLastName, models.OrderAscending, searchPageSize)
}

func (c *syncCoordinator) AddLocal(ctx context.Context) (models.Record, error) {
	record := make(models.Record, len(c.fieldList)+6)
	for _, field := range c.fieldList {
		record[field] = nil
	}
	record[models.FieldID] = c.nextLocalID()
	record[models.FieldAttributes] = map[string]any{"type": c.objectName}
	record[models.FieldLocal] = true
	record[models.FieldLocallyCreated] = true
	record[models.FieldLocallyUpdated] = false
	record[models.FieldLocallyDeleted] = false

	saved, err := c.soups.Upsert(ctx, c.soupName, []models.Record{record})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*syncCoordinator.AddLocal").Msg("failed to save local record")
		return nil, fmt.Errorf("add local record: %w", err)
	}

	return saved[0], nil
}

// nextLocalID returns local_<unix millis>, bumped past the previous id when
// two records are created within the same millisecond.
func (c *syncCoordinator) nextLocalID() string {
	c.idMu.Lock()
	defer c.idMu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.lastLocalID {
		id = c.lastLocalID + 1
	}
	c.lastLocalID = id

	return models.LocalIDPrefix + strconv.FormatInt(id, 10)
}

func (c *syncCoordinator) Save(ctx context.Context, record models.Record) (models.Record, error) {
	saved, err := c.soups.Upsert(ctx, c.soupName, []models.Record{record})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncCoordinator.Save").
			Str("id", record.ID()).
			Msg("failed to save record")
		return nil, fmt.Errorf("save record: %w", err)
	}

	c.notifier.Publish(notifier.EventStoreChanged, saved[0])
	return saved[0], nil
}

func (c *syncCoordinator) Delete(ctx context.Context, record models.Record) error {
	entryID, ok := record.SoupEntryID()
	if !ok {
		return ErrRecordNotPersisted
	}

	if err := c.soups.Remove(ctx, c.soupName, []int64{entryID}); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncCoordinator.Delete").
			Int64("soup_entry_id", entryID).
			Msg("failed to delete record")
		return fmt.Errorf("delete record: %w", err)
	}

	return nil
}

func (c *syncCoordinator) AddStoreChangeListener(listener notifier.Listener) func() {
	return c.notifier.Subscribe(notifier.EventStoreChanged, listener)
}
