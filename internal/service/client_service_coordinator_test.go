// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/mock"
	"github.com/MKhiriev/go-contacts-keeper/internal/notifier"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

const testSoup = "contacts"

var testFieldList = []string{
	models.FieldFirstName, models.FieldLastName, models.FieldTitle,
	models.FieldEmail, models.FieldMobilePhone, models.FieldDepartment, models.FieldHomePhone,
}

type coordinatorDeps struct {
	soups      *mock.MockSoupStore
	syncStates *mock.MockSyncStateRepository
	remote     *mock.MockRemoteSync
	notifier   *mock.MockChangeNotifier
}

func newTestCoordinator(t *testing.T, cfg config.ClientSync) (*syncCoordinator, coordinatorDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := coordinatorDeps{
		soups:      mock.NewMockSoupStore(ctrl),
		syncStates: mock.NewMockSyncStateRepository(ctrl),
		remote:     mock.NewMockRemoteSync(ctrl),
		notifier:   mock.NewMockChangeNotifier(ctrl),
	}

	c := NewSyncCoordinator(cfg, deps.soups, deps.syncStates, deps.remote, deps.notifier, logger.Nop()).(*syncCoordinator)
	return c, deps
}

func defaultSyncConfig() config.ClientSync {
	return config.ClientSync{
		ObjectName:  "Contact",
		SoupName:    testSoup,
		FieldList:   testFieldList,
		RecordLimit: 500,
	}
}

// ── NewSyncCoordinator ───────────────────────────────────────────────────────

func TestNewSyncCoordinator_RecordLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "configured", limit: 500, want: 500},
		{name: "zero falls back", limit: 0, want: 10000},
		{name: "negative falls back", limit: -3, want: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultSyncConfig()
			cfg.RecordLimit = tt.limit

			c, _ := newTestCoordinator(t, cfg)

			assert.Equal(t, tt.want, c.recordLimit)
		})
	}
}

// ── SyncDown ─────────────────────────────────────────────────────────────────

func TestSyncCoordinator_SyncDown_BuildsTargetAndPublishes(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	wantTarget := models.SyncDownTarget{
		Type:       models.TargetTypeQuery,
		ObjectName: "Contact",
		Fields:     append(append([]string(nil), testFieldList...), models.FieldID, models.FieldLastModifiedDate),
		Limit:      500,
	}
	done := models.SyncState{ID: 7, Type: models.SyncTypeDown, Status: models.SyncStatusDone}

	gomock.InOrder(
		deps.remote.EXPECT().
			SyncDown(gomock.Any(), wantTarget, testSoup, models.SyncOptions{MergeMode: models.MergeModeOverwrite}).
			Return(done, nil),
		deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, done),
	)

	state, err := c.SyncDown(ctx)

	require.NoError(t, err)
	assert.Equal(t, done, state)
	assert.Equal(t, int64(7), c.syncDownID)
	assert.False(t, c.syncInFlight.Load())
}

func TestSyncCoordinator_SyncDown_OverlappingCallsAreDropped(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	deps.remote.EXPECT().
		SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
		DoAndReturn(func(context.Context, models.SyncDownTarget, string, models.SyncOptions) (models.SyncState, error) {
			close(started)
			<-release
			return models.SyncState{ID: 1}, nil
		}).
		Times(1)
	deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()).Times(1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.SyncDown(ctx)
		assert.NoError(t, err)
	}()
	<-started

	for range 3 {
		_, err := c.SyncDown(ctx)
		assert.ErrorIs(t, err, ErrSyncInFlight)
	}
	_, err := c.SyncUp(ctx)
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(release)
	wg.Wait()
}

func TestSyncCoordinator_SyncDown_FailureReleasesGate(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	gomock.InOrder(
		deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
			Return(models.SyncState{}, assert.AnError),
		deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
			Return(models.SyncState{ID: 3}, nil),
	)
	deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()).Times(1)

	_, err := c.SyncDown(ctx)
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, c.syncInFlight.Load())
	assert.Zero(t, c.syncDownID)

	state, err := c.SyncDown(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), state.ID)
}

func TestSyncCoordinator_GateReleasedBeforeListenersRun(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
		Return(models.SyncState{ID: 1}, nil)
	deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()).
		Do(func(notifier.Event, any) {
			assert.False(t, c.syncInFlight.Load())
		})

	_, err := c.SyncDown(context.Background())
	require.NoError(t, err)
}

// ── ReSync ───────────────────────────────────────────────────────────────────

func TestSyncCoordinator_ReSync_WithoutSyncDown(t *testing.T) {
	c, _ := newTestCoordinator(t, defaultSyncConfig())

	_, err := c.ReSync(context.Background())

	require.ErrorIs(t, err, ErrNoSyncDown)
	assert.False(t, c.syncInFlight.Load())
}

func TestSyncCoordinator_ReSync_UsesLastSyncDownID(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
		Return(models.SyncState{ID: 42}, nil)
	deps.remote.EXPECT().ReSync(gomock.Any(), int64(42)).
		Return(models.SyncState{ID: 42, Status: models.SyncStatusDone}, nil)
	deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()).Times(2)

	_, err := c.SyncDown(ctx)
	require.NoError(t, err)

	state, err := c.ReSync(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsDone())
}

func TestSyncCoordinator_ReSync_FailureDoesNotPublish(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	c.syncDownID = 5

	deps.remote.EXPECT().ReSync(gomock.Any(), int64(5)).Return(models.SyncState{}, assert.AnError)

	_, err := c.ReSync(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, c.syncInFlight.Load())
}

// ── SyncUp ───────────────────────────────────────────────────────────────────

func TestSyncCoordinator_SyncUp_PushesFixedFieldsWithoutPublishing(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.remote.EXPECT().
		SyncUp(gomock.Any(), testSoup, models.SyncOptions{MergeMode: models.MergeModeOverwrite, FieldList: SyncUpFieldList}).
		Return(models.SyncState{ID: 9, Type: models.SyncTypeUp}, nil)

	state, err := c.SyncUp(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(9), state.ID)
}

func TestSyncCoordinator_SyncUp_SurfacesFailure(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.remote.EXPECT().SyncUp(gomock.Any(), testSoup, gomock.Any()).Return(models.SyncState{}, assert.AnError)

	_, err := c.SyncUp(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, c.syncInFlight.Load())
}

// ── RefreshSync ──────────────────────────────────────────────────────────────

func TestSyncCoordinator_RefreshSync_PushesBeforeResync(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	c.syncDownID = 11

	var pushed bool
	gomock.InOrder(
		deps.remote.EXPECT().SyncUp(gomock.Any(), testSoup, gomock.Any()).
			DoAndReturn(func(context.Context, string, models.SyncOptions) (models.SyncState, error) {
				pushed = true
				return models.SyncState{ID: 12}, nil
			}),
		deps.remote.EXPECT().ReSync(gomock.Any(), int64(11)).
			DoAndReturn(func(context.Context, int64) (models.SyncState, error) {
				assert.True(t, pushed)
				return models.SyncState{ID: 11}, nil
			}),
		deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()),
	)

	state, err := c.RefreshSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(11), state.ID)
}

func TestSyncCoordinator_RefreshSync_PushFailureSkipsResync(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	c.syncDownID = 11

	deps.remote.EXPECT().SyncUp(gomock.Any(), testSoup, gomock.Any()).Return(models.SyncState{}, assert.AnError)

	_, err := c.RefreshSync(context.Background())

	require.ErrorIs(t, err, assert.AnError)
}

// ── InitializeAndSync ────────────────────────────────────────────────────────

func TestSyncCoordinator_InitializeAndSync(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	gomock.InOrder(
		deps.soups.EXPECT().RegisterSoup(gomock.Any(), testSoup, ContactIndexSpecs).Return(nil),
		deps.syncStates.EXPECT().LatestSyncDown(gomock.Any(), testSoup).Return(models.SyncState{}, store.ErrSyncStateNotFound),
		deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).Return(models.SyncState{ID: 1}, nil),
		deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()),
	)

	_, err := c.InitializeAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), c.syncDownID)
}

func TestSyncCoordinator_InitializeAndSync_RegisterFailure(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.soups.EXPECT().RegisterSoup(gomock.Any(), testSoup, gomock.Any()).Return(assert.AnError)

	_, err := c.InitializeAndSync(context.Background())

	require.ErrorIs(t, err, assert.AnError)
}

func TestSyncCoordinator_InitializeAndSync_OfflineResumesPersistedSyncDown(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	deps.soups.EXPECT().RegisterSoup(gomock.Any(), testSoup, gomock.Any()).Return(nil)
	deps.syncStates.EXPECT().LatestSyncDown(gomock.Any(), testSoup).
		Return(models.SyncState{ID: 21, Type: models.SyncTypeDown, Status: models.SyncStatusDone}, nil)
	deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
		Return(models.SyncState{}, assert.AnError)

	_, err := c.InitializeAndSync(ctx)
	require.ErrorIs(t, err, assert.AnError)

	gomock.InOrder(
		deps.remote.EXPECT().SyncUp(gomock.Any(), testSoup, gomock.Any()).Return(models.SyncState{ID: 22}, nil),
		deps.remote.EXPECT().ReSync(gomock.Any(), int64(21)).Return(models.SyncState{ID: 21, Status: models.SyncStatusDone}, nil),
		deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, gomock.Any()),
	)

	state, err := c.RefreshSync(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(21), state.ID)
}

func TestSyncCoordinator_InitializeAndSync_KeepsKnownSyncDown(t *testing.T) {
	tests := []struct {
		name       string
		syncDownID int64
		lookup     func(*mock.MockSyncStateRepository)
		wantID     int64
	}{
		{
			name:       "already known",
			syncDownID: 7,
			lookup:     func(*mock.MockSyncStateRepository) {},
			wantID:     7,
		},
		{
			name: "lookup failure is not fatal",
			lookup: func(r *mock.MockSyncStateRepository) {
				r.EXPECT().LatestSyncDown(gomock.Any(), testSoup).Return(models.SyncState{}, store.ErrScanningRow)
			},
			wantID: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, deps := newTestCoordinator(t, defaultSyncConfig())
			c.syncDownID = tt.syncDownID
			tt.lookup(deps.syncStates)

			deps.soups.EXPECT().RegisterSoup(gomock.Any(), testSoup, gomock.Any()).Return(nil)
			deps.remote.EXPECT().SyncDown(gomock.Any(), gomock.Any(), testSoup, gomock.Any()).
				Return(models.SyncState{}, assert.AnError)

			_, err := c.InitializeAndSync(context.Background())

			require.ErrorIs(t, err, assert.AnError)
			assert.Equal(t, tt.wantID, c.syncDownID)
		})
	}
}

// ── Search ───────────────────────────────────────────────────────────────────

func TestBuildSearchSpec(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.QuerySpec
	}{
		{
			name:  "empty",
			query: "",
			want:  models.AllQuery(models.FieldFirstName, models.OrderAscending, 100),
		},
		{
			name:  "whitespace only",
			query: "   ",
			want:  models.AllQuery(models.FieldFirstName, models.OrderAscending, 100),
		},
		{
			name:  "first and last name",
			query: "Jane Doe",
			want: models.MatchQuery(
				"{contacts:FirstName}:Jane* AND {contacts:LastName}:Doe*",
				models.FieldLastName, models.OrderAscending, 100),
		},
		{
			name:  "single token",
			query: "Jane",
			want: models.MatchQuery(
				"{contacts:FirstName}:Jane* OR {contacts:LastName}:Jane*",
				models.FieldLastName, models.OrderAscending, 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSearchSpec(testSoup, tt.query))
		})
	}
}

func TestSyncCoordinator_Search_ReturnsEntries(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	entries := []models.Record{{models.FieldFirstName: "Jane"}}

	deps.soups.EXPECT().
		Query(gomock.Any(), testSoup, buildSearchSpec(testSoup, "Jane")).
		Return(models.Page{Entries: entries}, nil)

	got, ticket, err := c.Search(context.Background(), "Jane")

	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.Equal(t, uint64(1), ticket)
}

func TestSyncCoordinator_Search_DropsStaleResponse(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	older := []models.Record{{models.FieldFirstName: "J"}}
	newer := []models.Record{{models.FieldFirstName: "Jane"}}

	deps.soups.EXPECT().Query(gomock.Any(), testSoup, buildSearchSpec(testSoup, "J")).
		DoAndReturn(func(context.Context, string, models.QuerySpec) (models.Page, error) {
			close(slowStarted)
			<-releaseSlow
			return models.Page{Entries: older}, nil
		})
	deps.soups.EXPECT().Query(gomock.Any(), testSoup, buildSearchSpec(testSoup, "Jane")).
		Return(models.Page{Entries: newer}, nil)

	var (
		slowResult []models.Record
		slowTicket uint64
		slowErr    error
		wg         sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowResult, slowTicket, slowErr = c.Search(ctx, "J")
	}()
	<-slowStarted

	got, ticket, err := c.Search(ctx, "Jane")
	require.NoError(t, err)
	assert.Equal(t, newer, got)
	assert.Equal(t, uint64(2), ticket)

	close(releaseSlow)
	wg.Wait()

	assert.ErrorIs(t, slowErr, ErrStaleResponse)
	assert.Nil(t, slowResult)
	assert.Equal(t, uint64(1), slowTicket)
}

func TestSyncCoordinator_Search_ErrorsBypassStalenessFilter(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	ctx := context.Background()

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	deps.soups.EXPECT().Query(gomock.Any(), testSoup, buildSearchSpec(testSoup, "J")).
		DoAndReturn(func(context.Context, string, models.QuerySpec) (models.Page, error) {
			close(slowStarted)
			<-releaseSlow
			return models.Page{}, assert.AnError
		})
	deps.soups.EXPECT().Query(gomock.Any(), testSoup, gomock.Any()).Return(models.Page{}, nil)

	var (
		slowErr error
		wg      sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, slowErr = c.Search(ctx, "J")
	}()
	<-slowStarted

	_, _, err := c.Search(ctx, "Jane")
	require.NoError(t, err)

	close(releaseSlow)
	wg.Wait()

	assert.ErrorIs(t, slowErr, assert.AnError)
	assert.False(t, errors.Is(slowErr, ErrStaleResponse))
}

// ── AddLocal ─────────────────────────────────────────────────────────────────

var localIDPattern = regexp.MustCompile(`^local_\d+$`)

func TestSyncCoordinator_AddLocal(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.soups.EXPECT().Upsert(gomock.Any(), testSoup, gomock.Len(1)).
		DoAndReturn(func(_ context.Context, _ string, records []models.Record) ([]models.Record, error) {
			saved := records[0].Clone()
			saved.SetSoupEntryID(1)
			return []models.Record{saved}, nil
		})

	record, err := c.AddLocal(context.Background())

	require.NoError(t, err)
	assert.Regexp(t, localIDPattern, record.ID())
	assert.True(t, record.IsLocal())
	assert.True(t, record.IsLocallyCreated())
	assert.False(t, record.IsLocallyUpdated())
	assert.False(t, record.IsLocallyDeleted())
	assert.Equal(t, map[string]any{"type": "Contact"}, record[models.FieldAttributes])
	for _, field := range testFieldList {
		v, ok := record[field]
		assert.True(t, ok, field)
		assert.Nil(t, v, field)
	}

	entryID, ok := record.SoupEntryID()
	require.True(t, ok)
	assert.Equal(t, int64(1), entryID)
}

func TestSyncCoordinator_AddLocal_SameMillisecondIDsDiffer(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	fixed := time.UnixMilli(1_700_000_000_000)
	c.now = func() time.Time { return fixed }

	deps.soups.EXPECT().Upsert(gomock.Any(), testSoup, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, records []models.Record) ([]models.Record, error) {
			return records, nil
		}).
		Times(2)

	first, err := c.AddLocal(context.Background())
	require.NoError(t, err)
	second, err := c.AddLocal(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "local_1700000000000", first.ID())
	assert.Equal(t, "local_1700000000001", second.ID())
}

func TestSyncCoordinator_AddLocal_StoreError(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.soups.EXPECT().Upsert(gomock.Any(), testSoup, gomock.Any()).Return(nil, assert.AnError)

	record, err := c.AddLocal(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, record)
}

// ── Save / Delete ────────────────────────────────────────────────────────────

func TestSyncCoordinator_Save_PublishesOncePerCallInOrder(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())
	first := models.Record{models.FieldFirstName: "Jane"}
	second := models.Record{models.FieldFirstName: "Adam"}

	gomock.InOrder(
		deps.soups.EXPECT().Upsert(gomock.Any(), testSoup, []models.Record{first}).Return([]models.Record{first}, nil),
		deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, first),
		deps.soups.EXPECT().Upsert(gomock.Any(), testSoup, []models.Record{second}).Return([]models.Record{second}, nil),
		deps.notifier.EXPECT().Publish(notifier.EventStoreChanged, second),
	)

	_, err := c.Save(context.Background(), first)
	require.NoError(t, err)
	_, err = c.Save(context.Background(), second)
	require.NoError(t, err)
}

func TestSyncCoordinator_Save_StoreErrorDoesNotPublish(t *testing.T) {
	c, deps := newTestCoordinator(t, defaultSyncConfig())

	deps.soups.EXPECT().Upsert(gomock.Any(), testSoup, gomock.Any()).Return(nil, assert.AnError)

	_, err := c.Save(context.Background(), models.Record{})

	require.ErrorIs(t, err, assert.AnError)
}

func TestSyncCoordinator_Delete(t *testing.T) {
	tests := []struct {
		name      string
		record    models.Record
		removeErr error
		wantErr   error
	}{
		{name: "persisted", record: models.Record{models.FieldSoupEntryID: int64(4)}},
		{name: "not persisted", record: models.Record{models.FieldID: "local_1"}, wantErr: ErrRecordNotPersisted},
		{name: "store error", record: models.Record{models.FieldSoupEntryID: int64(4)}, removeErr: assert.AnError, wantErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, deps := newTestCoordinator(t, defaultSyncConfig())
			if _, ok := tt.record.SoupEntryID(); ok {
				deps.soups.EXPECT().Remove(gomock.Any(), testSoup, []int64{4}).Return(tt.removeErr)
			}

			err := c.Delete(context.Background(), tt.record)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// ── AddStoreChangeListener ───────────────────────────────────────────────────

func TestSyncCoordinator_AddStoreChangeListener_DeliversSaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	soups := mock.NewMockSoupStore(ctrl)
	c := NewSyncCoordinator(defaultSyncConfig(), soups, mock.NewMockSyncStateRepository(ctrl), mock.NewMockRemoteSync(ctrl), notifier.New(), logger.Nop())

	soups.EXPECT().Upsert(gomock.Any(), testSoup, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, records []models.Record) ([]models.Record, error) {
			return records, nil
		}).
		Times(2)

	var got []any
	unsubscribe := c.AddStoreChangeListener(func(payload any) { got = append(got, payload) })

	_, err := c.Save(context.Background(), models.Record{models.FieldID: "a"})
	require.NoError(t, err)
	unsubscribe()
	_, err = c.Save(context.Background(), models.Record{models.FieldID: "b"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, models.Record{models.FieldID: "a"}, got[0])
}
