// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-contacts-keeper/internal/notifier"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// RemoteSync moves records between a soup and the remote record system.
// Every operation persists a [models.SyncState] and returns it.
type RemoteSync interface {
	// SyncDown pulls the records selected by target into soupName.
	SyncDown(ctx context.Context, target models.SyncDownTarget, soupName string, options models.SyncOptions) (models.SyncState, error)

	// ReSync repeats the sync down identified by syncID, fetching only
	// records modified after the newest timestamp that sync has seen.
	ReSync(ctx context.Context, syncID int64) (models.SyncState, error)

	// SyncUp pushes the locally created, updated and deleted records of
	// soupName. Only options.FieldList is sent for creates and updates.
	SyncUp(ctx context.Context, soupName string, options models.SyncOptions) (models.SyncState, error)
}

// SyncCoordinator is the contacts data layer used by the UI. It owns the soup,
// serialises sync operations and suppresses stale search results.
type SyncCoordinator interface {
	// InitializeAndSync registers the soup when missing and pulls it.
	InitializeAndSync(ctx context.Context) (models.SyncState, error)

	// RefreshSync pushes local changes and, once the push succeeded,
	// re-syncs. Records the server rejected do not stop the re-sync.
	RefreshSync(ctx context.Context) (models.SyncState, error)

	SyncDown(ctx context.Context) (models.SyncState, error)
	ReSync(ctx context.Context) (models.SyncState, error)
	SyncUp(ctx context.Context) (models.SyncState, error)

	// Search returns the records matching query with the ticket of this
	// search. Tickets grow with every call; [ErrStaleResponse] is returned
	// when a search with a newer ticket already answered.
	Search(ctx context.Context, query string) ([]models.Record, uint64, error)

	// AddLocal creates an empty contact that exists only on the device.
	AddLocal(ctx context.Context) (models.Record, error)

	// Save upserts record and notifies store change listeners.
	Save(ctx context.Context, record models.Record) (models.Record, error)

	// Delete removes record from the soup.
	Delete(ctx context.Context, record models.Record) error

	AddStoreChangeListener(listener notifier.Listener) (unsubscribe func())
}

// ClientSyncJob refreshes the soup in the background.
type ClientSyncJob interface {
	// Start runs RefreshSync every interval, defaulting to 5 minutes. A
	// running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the job and waits for it to exit.
	Stop()
}
