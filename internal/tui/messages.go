// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type searchResultMsg struct {
	query   string
	ticket  uint64
	records []models.Record
	err     error
}

type syncDoneMsg struct {
	err error
}

// storeChangedMsg is sent by the coordinator's store change listener.
type storeChangedMsg struct{}

type contactCreatedMsg struct {
	record models.Record
	err    error
}

type itemSavedMsg struct {
	record models.Record
	err    error
}

type itemDeletedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
