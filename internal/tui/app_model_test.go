// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/mock"
	"github.com/MKhiriev/go-contacts-keeper/internal/notifier"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

func newTestModel(t *testing.T) (appModel, *mock.MockSyncCoordinator) {
	t.Helper()
	coordinator := mock.NewMockSyncCoordinator(gomock.NewController(t))
	m := newAppModel(context.Background(), coordinator, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	return m, coordinator
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

// collect runs cmd, expanding batches, and returns the produced messages.
// Timer based commands are given a bounded time to fire.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-out:
	case <-time.After(3 * time.Second):
		return nil
	}

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, collect(t, c)...)
	}
	return msgs
}

func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if found, ok := msg.(T); ok {
			return found
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(appModel)
	require.True(t, ok)
	return updated, cmd
}

func contact(id, first, last string) models.Record {
	return models.Record{
		models.FieldID:          id,
		models.FieldFirstName:   first,
		models.FieldLastName:    last,
		models.FieldSoupEntryID: int64(1),
	}
}

// ── startup ──────────────────────────────────────────────────────────────────

func TestInit_SyncsThenLoadsList(t *testing.T) {
	m, coordinator := newTestModel(t)
	records := []models.Record{contact("003A", "Jane", "Doe")}

	gomock.InOrder(
		coordinator.EXPECT().InitializeAndSync(gomock.Any()).Return(models.SyncState{Status: models.SyncStatusDone}, nil),
		coordinator.EXPECT().Search(gomock.Any(), "").Return(records, uint64(1), nil),
	)

	assert.True(t, m.list.syncing)
	done := findMsg[syncDoneMsg](t, collect(t, m.Init()))

	m, cmd := update(t, m, done)
	assert.False(t, m.list.syncing)
	assert.False(t, m.showError)

	m, _ = update(t, m, findMsg[searchResultMsg](t, collect(t, cmd)))
	assert.False(t, m.list.loading)
	require.Len(t, m.list.items, 1)
	assert.Contains(t, m.View(), "Doe, Jane")
}

func TestInit_OfflineStillLoadsLocalContacts(t *testing.T) {
	m, coordinator := newTestModel(t)

	coordinator.EXPECT().Search(gomock.Any(), "").Return([]models.Record{contact("local_1", "Ann", "")}, uint64(1), nil)

	m, cmd := update(t, m, syncDoneMsg{err: errors.New("dial tcp: connection refused")})

	assert.True(t, m.showError)
	assert.Contains(t, m.errorOverlay.message, "сервер недоступен")

	m, _ = update(t, m, findMsg[searchResultMsg](t, collect(t, cmd)))
	assert.Len(t, m.list.items, 1)
}

// ── search ───────────────────────────────────────────────────────────────────

func TestSearch_TypingQueriesCoordinator(t *testing.T) {
	m, coordinator := newTestModel(t)
	m.list.loading = false

	coordinator.EXPECT().Search(gomock.Any(), "j").Return([]models.Record{contact("003A", "Jane", "Doe")}, uint64(1), nil)

	m, _ = update(t, m, runes("/"))
	require.True(t, m.list.searching)

	m, cmd := update(t, m, runes("j"))
	assert.Equal(t, "j", m.list.query.Value())

	m, _ = update(t, m, findMsg[searchResultMsg](t, collect(t, cmd)))
	require.Len(t, m.list.items, 1)
	assert.Equal(t, 0, m.list.idx, "j is typed into the query, not used to move the cursor")
}

func TestSearch_EscClearsQuery(t *testing.T) {
	m, coordinator := newTestModel(t)
	m.list.searching = true
	m.list.query.SetValue("ja")

	coordinator.EXPECT().Search(gomock.Any(), "").Return(nil, uint64(1), nil)

	m, cmd := update(t, m, escKey)

	assert.False(t, m.list.searching)
	assert.Empty(t, m.list.query.Value())
	findMsg[searchResultMsg](t, collect(t, cmd))
}

func TestSearchResult_OutdatedAnswersAreDropped(t *testing.T) {
	tests := []struct {
		name string
		msg  searchResultMsg
	}{
		{
			name: "answer for an older query",
			msg:  searchResultMsg{query: "j", ticket: 4, records: []models.Record{contact("003A", "Jane", "Doe")}},
		},
		{
			name: "older answer for the same query",
			msg:  searchResultMsg{query: "ja", ticket: 3, records: []models.Record{contact("003A", "Jane", "Doe")}},
		},
		{
			name: "stale response from coordinator",
			msg:  searchResultMsg{query: "ja", ticket: 6, err: service.ErrStaleResponse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m.list.query.SetValue("ja")
			m.list.setItems([]models.Record{contact("003B", "Jack", "Ray")})
			m.searchTicket = 5

			m, cmd := update(t, m, tt.msg)

			assert.Nil(t, cmd)
			assert.False(t, m.showError)
			assert.Equal(t, uint64(5), m.searchTicket)
			require.Len(t, m.list.items, 1)
			assert.Equal(t, "003B", m.list.items[0].ID())
		})
	}
}

func TestSearchResult_SameQueryTypedTwiceKeepsNewest(t *testing.T) {
	m, coordinator := newTestModel(t)
	m.list.loading = false
	m.list.query.SetValue("ja")

	gomock.InOrder(
		coordinator.EXPECT().Search(gomock.Any(), "ja").Return([]models.Record{contact("003A", "Jane", "Doe")}, uint64(1), nil),
		coordinator.EXPECT().Search(gomock.Any(), "ja").Return([]models.Record{contact("003B", "Jack", "Ray"), contact("003C", "Jade", "Fox")}, uint64(2), nil),
	)

	first := findMsg[searchResultMsg](t, collect(t, m.cmdSearch("ja")))
	second := findMsg[searchResultMsg](t, collect(t, m.cmdSearch("ja")))
	require.Equal(t, first.query, second.query)

	m, _ = update(t, m, second)
	m, _ = update(t, m, first)

	assert.Equal(t, uint64(2), m.searchTicket)
	require.Len(t, m.list.items, 2)
	assert.Equal(t, "003B", m.list.items[0].ID())
}

func TestSearchResult_HidesLocallyDeleted(t *testing.T) {
	m, _ := newTestModel(t)

	deleted := contact("003D", "Gone", "Away")
	deleted.MarkLocallyDeleted()

	m, _ = update(t, m, searchResultMsg{records: []models.Record{contact("003A", "Jane", "Doe"), deleted}})

	require.Len(t, m.list.items, 1)
	assert.Equal(t, "003A", m.list.items[0].ID())
}

func TestStoreChanged_RerunsCurrentQuery(t *testing.T) {
	m, coordinator := newTestModel(t)
	m.list.query.SetValue("do")

	coordinator.EXPECT().Search(gomock.Any(), "do").Return(nil, uint64(1), nil)

	_, cmd := update(t, m, storeChangedMsg{})

	assert.Equal(t, "do", findMsg[searchResultMsg](t, collect(t, cmd)).query)
}

// ── refresh ──────────────────────────────────────────────────────────────────

func TestRefresh(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(c *mock.MockSyncCoordinator)
		wantStatus string
		wantError  bool
	}{
		{
			name: "pushes and re-syncs",
			setup: func(c *mock.MockSyncCoordinator) {
				c.EXPECT().RefreshSync(gomock.Any()).Return(models.SyncState{}, nil)
			},
			wantStatus: "Синхронизировано",
		},
		{
			name: "falls back to a full pull before the first one succeeded",
			setup: func(c *mock.MockSyncCoordinator) {
				gomock.InOrder(
					c.EXPECT().RefreshSync(gomock.Any()).Return(models.SyncState{}, service.ErrNoSyncDown),
					c.EXPECT().SyncDown(gomock.Any()).Return(models.SyncState{}, nil),
				)
			},
			wantStatus: "Синхронизировано",
		},
		{
			name: "sync already running",
			setup: func(c *mock.MockSyncCoordinator) {
				c.EXPECT().RefreshSync(gomock.Any()).Return(models.SyncState{}, service.ErrSyncInFlight)
			},
			wantStatus: "Синхронизация уже выполняется",
		},
		{
			name: "push rejected",
			setup: func(c *mock.MockSyncCoordinator) {
				c.EXPECT().RefreshSync(gomock.Any()).Return(models.SyncState{}, service.ErrHashMismatch)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, coordinator := newTestModel(t)
			m.list.syncing = false
			tt.setup(coordinator)

			m, cmd := update(t, m, runes("s"))
			require.True(t, m.list.syncing)

			m, _ = update(t, m, findMsg[syncDoneMsg](t, collect(t, cmd)))

			assert.False(t, m.list.syncing)
			assert.Equal(t, tt.wantStatus, m.list.status)
			assert.Equal(t, tt.wantError, m.showError)
		})
	}
}

func TestRefresh_IgnoredWhileSyncing(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, runes("s"))

	assert.Nil(t, cmd)
}

// ── create, edit, delete ─────────────────────────────────────────────────────

func TestNewContact_SavesFormFields(t *testing.T) {
	m, coordinator := newTestModel(t)
	m.list.loading = false

	local := models.Record{
		models.FieldID:             "local_1",
		models.FieldSoupEntryID:    int64(7),
		models.FieldLocal:          true,
		models.FieldLocallyCreated: true,
		models.FieldLocallyUpdated: false,
	}
	coordinator.EXPECT().AddLocal(gomock.Any()).Return(local, nil)

	var saved models.Record
	coordinator.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.Record) (models.Record, error) {
			saved = r
			return r, nil
		})
	coordinator.EXPECT().Search(gomock.Any(), "").Return([]models.Record{local}, uint64(1), nil)

	m, cmd := update(t, m, runes("n"))
	m, _ = update(t, m, findMsg[contactCreatedMsg](t, collect(t, cmd)))
	require.Equal(t, screenForm, m.currentScreen)
	require.True(t, m.form.isNew)

	m.form.inputs[0].SetValue("Ann")
	m.form.inputs[4].SetValue("ann@example.com")

	m, cmd = update(t, m, enterKey)
	require.True(t, m.form.submitting)
	m, cmd = update(t, m, findMsg[itemSavedMsg](t, collect(t, cmd)))

	assert.Equal(t, screenDetail, m.currentScreen)
	assert.Equal(t, "Ann", saved[models.FieldFirstName])
	assert.Equal(t, "ann@example.com", saved[models.FieldEmail])
	assert.Nil(t, saved[models.FieldLastName])
	assert.True(t, saved.IsLocallyCreated())
	assert.False(t, saved.IsLocallyUpdated(), "a contact never pushed is created, not updated")
	findMsg[searchResultMsg](t, collect(t, cmd))
}

func TestEditContact_FlagsRemoteContactAsUpdated(t *testing.T) {
	m, coordinator := newTestModel(t)
	m.currentScreen = screenDetail
	m.detail = detailModel{record: contact("003A", "Jane", "Doe")}

	var saved models.Record
	coordinator.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.Record) (models.Record, error) {
			saved = r
			return r, nil
		})

	m, _ = update(t, m, runes("e"))
	require.Equal(t, screenForm, m.currentScreen)
	assert.Equal(t, "Jane", m.form.inputs[0].Value())

	m.form.inputs[1].SetValue("Smith")
	_, cmd := update(t, m, enterKey)
	findMsg[itemSavedMsg](t, collect(t, cmd))

	assert.Equal(t, "Smith", saved[models.FieldLastName])
	assert.True(t, saved.IsLocal())
	assert.True(t, saved.IsLocallyUpdated())
	assert.Equal(t, "Doe", m.detail.record[models.FieldLastName], "the shown record is not mutated by the form")
}

func TestEditContact_RequiresName(t *testing.T) {
	m, _ := newTestModel(t)
	m.currentScreen = screenDetail
	m.detail = detailModel{record: contact("003A", "", "")}

	m, _ = update(t, m, runes("e"))
	m, cmd := update(t, m, enterKey)

	assert.Nil(t, cmd)
	assert.True(t, m.showError)
	assert.False(t, m.form.submitting)
}

func TestEditContact_RejectsInvalidEmail(t *testing.T) {
	m, _ := newTestModel(t)
	m.currentScreen = screenDetail
	m.detail = detailModel{record: contact("003A", "Jane", "Doe")}

	m, _ = update(t, m, runes("e"))
	m.form.inputs[4].SetValue("jane at example")
	m, cmd := update(t, m, enterKey)

	assert.Nil(t, cmd)
	assert.True(t, m.showError)
	assert.Equal(t, "Некорректный email", m.errorOverlay.message)
	assert.False(t, m.form.submitting)
}

func TestEditContact_ClearsSyncError(t *testing.T) {
	m, coordinator := newTestModel(t)
	rejected := contact("003A", "Jane", "Doe")
	rejected[models.FieldEmail] = "jane@"
	rejected.MarkLocallyUpdated()
	rejected[models.FieldSyncError] = "bad request: INVALID_EMAIL_ADDRESS"
	m.currentScreen = screenDetail
	m.detail = detailModel{record: rejected}
	assert.Contains(t, m.View(), "отклонён сервером")
	assert.Contains(t, m.View(), "INVALID_EMAIL_ADDRESS")

	var saved models.Record
	coordinator.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.Record) (models.Record, error) {
			saved = r
			return r, nil
		})

	m, _ = update(t, m, runes("e"))
	m.form.inputs[4].SetValue("jane@example.com")
	_, cmd := update(t, m, enterKey)
	findMsg[itemSavedMsg](t, collect(t, cmd))

	assert.Equal(t, "jane@example.com", saved[models.FieldEmail])
	assert.Empty(t, saved.SyncError())
	assert.True(t, saved.IsLocallyUpdated())
}

func TestDeleteContact(t *testing.T) {
	tests := []struct {
		name   string
		record func() models.Record
		expect func(c *mock.MockSyncCoordinator)
	}{
		{
			name: "never pushed contact is removed",
			record: func() models.Record {
				r := contact("local_1", "Ann", "")
				r[models.FieldLocallyCreated] = true
				return r
			},
			expect: func(c *mock.MockSyncCoordinator) {
				c.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "remote contact is flagged for deletion",
			record: func() models.Record { return contact("003A", "Jane", "Doe") },
			expect: func(c *mock.MockSyncCoordinator) {
				c.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, r models.Record) (models.Record, error) {
						if !r.IsLocallyDeleted() || !r.IsLocal() {
							return nil, errors.New("record is not flagged for deletion")
						}
						return r, nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, coordinator := newTestModel(t)
			m.currentScreen = screenDetail
			m.detail = detailModel{record: tt.record()}

			tt.expect(coordinator)
			coordinator.EXPECT().Search(gomock.Any(), "").Return(nil, uint64(1), nil)

			m, _ = update(t, m, runes("d"))
			require.True(t, m.showConfirm)
			assert.Contains(t, m.View(), "Удалить контакт")

			m, cmd := update(t, m, runes("y"))
			deleted := findMsg[itemDeletedMsg](t, collect(t, cmd))
			require.NoError(t, deleted.err)
			m, cmd = update(t, m, deleted)

			assert.Equal(t, screenList, m.currentScreen)
			findMsg[searchResultMsg](t, collect(t, cmd))
		})
	}
}

func TestDeleteContact_Cancelled(t *testing.T) {
	m, _ := newTestModel(t)
	m.currentScreen = screenDetail
	m.detail = detailModel{record: contact("003A", "Jane", "Doe")}

	m, _ = update(t, m, runes("d"))
	m, cmd := update(t, m, runes("n"))

	assert.Nil(t, cmd)
	assert.False(t, m.showConfirm)
	assert.Nil(t, m.pendingDelete)
	assert.Equal(t, screenDetail, m.currentScreen)
}

// ── overlays ─────────────────────────────────────────────────────────────────

func TestErrorOverlay_BlocksKeysUntilClosed(t *testing.T) {
	m, _ := newTestModel(t)
	m.showErrorf("boom")

	m, cmd := update(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.True(t, m.showError)

	m, _ = update(t, m, enterKey)
	assert.False(t, m.showError)
}

func TestBuildInfo(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runes("v"))
	assert.Contains(t, m.View(), "1.0.0")
	assert.Contains(t, m.View(), "N/A")

	m, _ = update(t, m, escKey)
	assert.False(t, m.showBuildInfo)
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ── store change listener ────────────────────────────────────────────────────

func TestListenStoreChanges(t *testing.T) {
	coordinator := mock.NewMockSyncCoordinator(gomock.NewController(t))
	n := notifier.New()
	coordinator.EXPECT().AddStoreChangeListener(gomock.Any()).DoAndReturn(
		func(l notifier.Listener) func() {
			return n.Subscribe(notifier.EventStoreChanged, l)
		})

	var got []tea.Msg
	unsubscribe := listenStoreChanges(coordinator, func(msg tea.Msg) { got = append(got, msg) })

	n.Publish(notifier.EventStoreChanged, models.SyncState{})
	unsubscribe()
	n.Publish(notifier.EventStoreChanged, models.SyncState{})

	require.Len(t, got, 1)
	assert.IsType(t, storeChangedMsg{}, got[0])
}

// ── view helpers ─────────────────────────────────────────────────────────────

func TestContactName(t *testing.T) {
	tests := []struct {
		record models.Record
		want   string
	}{
		{contact("1", "Jane", "Doe"), "Doe, Jane"},
		{contact("1", "", "Doe"), "Doe"},
		{contact("1", "Jane", ""), "Jane"},
		{models.Record{models.FieldID: "local_9"}, "local_9"},
		{models.Record{}, "(без имени)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, contactName(tt.record))
		})
	}
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "Юл...", fitText("Юлиания", 5))
	assert.Equal(t, "ab", fitText("abcdef", 2))
}
