// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
)

type appModel struct {
	ctx           context.Context
	coordinator   service.SyncCoordinator
	buildInfo     models.AppBuildInfo
	logger        *logger.Logger
	currentScreen screen

	list   listModel
	detail detailModel
	form   formContactModel

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete models.Record
	showBuildInfo bool

	// searchTicket is the ticket of the newest search result shown.
	searchTicket uint64
}

func newAppModel(ctx context.Context, coordinator service.SyncCoordinator, buildInfo models.AppBuildInfo, logger *logger.Logger) appModel {
	m := appModel{
		ctx:           ctx,
		coordinator:   coordinator,
		buildInfo:     buildInfo,
		logger:        logger,
		currentScreen: screenList,
		list:          newListModel(),
	}
	m.list.syncing = true
	return m
}

// Init registers the soup and pulls the contacts. The list is loaded once
// that finishes, whether or not the server was reachable.
func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.list.spinner.Tick, m.cmdInitialize())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				record := m.pendingDelete
				m.pendingDelete = nil
				return m, m.cmdDelete(record)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = nil
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case searchResultMsg:
		return m.onSearchResult(msg), nil
	case storeChangedMsg:
		return m, m.cmdSearch(m.list.query.Value())
	case syncDoneMsg:
		m.list.syncing = false
		switch {
		case msg.err == nil:
			m.list.status = "Синхронизировано"
		case errors.Is(msg.err, service.ErrSyncInFlight):
			m.list.status = "Синхронизация уже выполняется"
		default:
			m.logger.Err(msg.err).Str("func", "appModel.Update").Msg("sync failed")
			m.showErrorf(humanizeSyncError(msg.err))
		}
		return m, tea.Batch(m.cmdSearch(m.list.query.Value()), cmdClearStatus())
	case contactCreatedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.form = newFormContactModel(msg.record, true)
		m.currentScreen = screenForm
		return m, nil
	case itemSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.detail = detailModel{record: msg.record}
		m.currentScreen = screenDetail
		return m, m.cmdSearch(m.list.query.Value())
	case itemDeletedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.currentScreen = screenList
		return m, m.cmdSearch(m.list.query.Value())
	case copiedMsg:
		m.detail.status = "Скопировано!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case spinner.TickMsg:
		if !m.list.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.currentScreen {
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// onSearchResult shows the newest search result. Answers carrying an older
// ticket than the one already shown are dropped, even for the same query.
func (m appModel) onSearchResult(msg searchResultMsg) appModel {
	if msg.ticket < m.searchTicket || errors.Is(msg.err, service.ErrStaleResponse) {
		return m
	}

	m.searchTicket = msg.ticket
	m.list.loading = false
	if msg.err != nil {
		m.showErrorf(msg.err.Error())
		return m
	}

	m.list.setItems(msg.records)
	return m
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if m.list.searching {
		if ok {
			switch {
			case key.Matches(keyMsg, keys.esc):
				m.list.searching = false
				m.list.query.Blur()
				m.list.query.SetValue("")
				return m, m.cmdSearch("")
			case key.Matches(keyMsg, keys.enter):
				m.list.searching = false
				m.list.query.Blur()
				return m, nil
			}
		}

		before := m.list.query.Value()
		var cmd tea.Cmd
		m.list.query, cmd = m.list.query.Update(msg)
		if after := m.list.query.Value(); after != before {
			return m, tea.Batch(cmd, m.cmdSearch(after))
		}
		return m, cmd
	}

	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		record, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{record: record}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		cmd := m.list.query.Focus()
		return m, cmd
	case key.Matches(keyMsg, keys.newItem):
		return m, m.cmdAddLocal()
	case key.Matches(keyMsg, keys.sync):
		if m.list.syncing {
			return m, nil
		}
		m.list.syncing = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdRefresh())
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.edit):
		m.form = newFormContactModel(m.detail.record, false)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = contactName(m.detail.record)
		m.pendingDelete = m.detail.record
	case key.Matches(keyMsg, keys.copy):
		if email := fieldOrEmpty(m.detail.record, models.FieldEmail); email != "" {
			return m, cmdCopyToClipboard(email)
		}
	case key.Matches(keyMsg, keys.copyPhone):
		phone := fieldOrEmpty(m.detail.record, models.FieldMobilePhone)
		if phone == "" {
			phone = fieldOrEmpty(m.detail.record, models.FieldHomePhone)
		}
		if phone != "" {
			return m, cmdCopyToClipboard(phone)
		}
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.form.isNew {
				m.currentScreen = screenList
				return m, m.cmdSearch(m.list.query.Value())
			}
			m.currentScreen = screenDetail
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			if !m.form.hasName() {
				m.showErrorf("Имя или фамилия обязательны")
				return m, nil
			}
			if !m.form.validEmail(m.ctx) {
				m.showErrorf("Некорректный email")
				return m, nil
			}
			m.form.submitting = true
			return m, m.cmdSave(m.form.toRecord())
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdInitialize() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator
	return func() tea.Msg {
		_, err := coordinator.InitializeAndSync(ctx)
		return syncDoneMsg{err: err}
	}
}

// cmdRefresh pushes and re-syncs. Until a first pull has succeeded there is
// nothing to re-sync, so a full sync down runs instead.
func (m appModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator
	return func() tea.Msg {
		_, err := coordinator.RefreshSync(ctx)
		if errors.Is(err, service.ErrNoSyncDown) {
			_, err = coordinator.SyncDown(ctx)
		}
		return syncDoneMsg{err: err}
	}
}

func (m appModel) cmdSearch(query string) tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator
	return func() tea.Msg {
		records, ticket, err := coordinator.Search(ctx, query)
		return searchResultMsg{query: query, ticket: ticket, records: records, err: err}
	}
}

func (m appModel) cmdAddLocal() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator
	return func() tea.Msg {
		record, err := coordinator.AddLocal(ctx)
		return contactCreatedMsg{record: record, err: err}
	}
}

func (m appModel) cmdSave(record models.Record) tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator
	return func() tea.Msg {
		saved, err := coordinator.Save(ctx, record)
		return itemSavedMsg{record: saved, err: err}
	}
}

// cmdDelete removes a contact that never reached the server. Other contacts
// are flagged so the next sync up deletes them remotely first.
func (m appModel) cmdDelete(record models.Record) tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator
	return func() tea.Msg {
		if record.IsLocallyCreated() {
			return itemDeletedMsg{err: coordinator.Delete(ctx, record)}
		}

		flagged := record.Clone()
		flagged.MarkLocallyDeleted()
		_, err := coordinator.Save(ctx, flagged)
		return itemDeletedMsg{err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return itemSavedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
