// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SoupStore is the local, queryable cache of records grouped in soups.
// Each soup has its own table, index columns and full-text index.
type SoupStore interface {
	// RegisterSoup creates the soup with its indexes. Registering an existing
	// soup is a no-op.
	RegisterSoup(ctx context.Context, soupName string, indexSpecs []models.IndexSpec) error
	SoupExists(ctx context.Context, soupName string) (bool, error)
	// Upsert inserts records without _soupEntryId and updates the others.
	// The returned records carry their _soupEntryId.
	Upsert(ctx context.Context, soupName string, records []models.Record) ([]models.Record, error)
	// UpsertWithExternalID matches records lacking _soupEntryId against
	// existing entries by the value at externalIDPath before upserting.
	UpsertWithExternalID(ctx context.Context, soupName, externalIDPath string, records []models.Record) ([]models.Record, error)
	Remove(ctx context.Context, soupName string, soupEntryIDs []int64) error
	Query(ctx context.Context, soupName string, spec models.QuerySpec) (models.Page, error)
	QueryPage(ctx context.Context, soupName string, spec models.QuerySpec, pageIndex int) (models.Page, error)
}

// SyncStateRepository persists sync operations so pulls can be resumed.
type SyncStateRepository interface {
	Create(ctx context.Context, state models.SyncState) (models.SyncState, error)
	Update(ctx context.Context, state models.SyncState) error
	Get(ctx context.Context, syncID int64) (models.SyncState, error)

	// LatestSyncDown returns the newest resumable sync down of soupName, or
	// ErrSyncStateNotFound.
	LatestSyncDown(ctx context.Context, soupName string) (models.SyncState, error)

	// Prune deletes the states of soupName and syncType other than keepID and
	// returns how many were removed.
	Prune(ctx context.Context, soupName string, syncType models.SyncType, keepID int64) (int64, error)
}

// RecordRepository is the server-side record table.
type RecordRepository interface {
	Query(ctx context.Context, objectName string, req models.QueryRequest) ([]models.RemoteRecord, error)
	Create(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)
	Update(ctx context.Context, objectName, id string, fields models.Record) (models.RemoteRecord, error)
	Delete(ctx context.Context, objectName, id string) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
