// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal contacts browser. It lists and searches the
// local contacts soup, edits contacts offline and triggers syncs through
// [service.SyncCoordinator].
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type TUI struct {
	coordinator service.SyncCoordinator
	buildInfo   models.AppBuildInfo
	logger      *logger.Logger
}

func New(coordinator service.SyncCoordinator, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		coordinator: coordinator,
		buildInfo:   buildInfo,
		logger:      logger,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.coordinator, t.buildInfo, t.logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := listenStoreChanges(t.coordinator, program.Send)
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// listenStoreChanges forwards store change events to the UI loop.
func listenStoreChanges(coordinator service.SyncCoordinator, send func(tea.Msg)) (unsubscribe func()) {
	return coordinator.AddStoreChangeListener(func(any) {
		send(storeChangedMsg{})
	})
}
