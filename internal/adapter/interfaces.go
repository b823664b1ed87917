// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote record system over HTTP.
//
// [RecordAdapter] hides the transport from the sync engine. Non-2xx responses
// are mapped to the sentinel errors of this package, so callers can use
// [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/record_adapter_mock.go -package=mock

// RecordAdapter is the client side of the record API.
type RecordAdapter interface {
	// Authenticate exchanges the configured client credentials for an access
	// token used by every later call. Calls made without a token
	// authenticate first.
	Authenticate(ctx context.Context) error

	// Query returns records of objectName ordered by LastModifiedDate
	// ascending. Every record carries Id and LastModifiedDate.
	Query(ctx context.Context, objectName string, req models.QueryRequest) ([]models.Record, error)

	// Create stores a new record and returns its remote id.
	Create(ctx context.Context, objectName string, fields models.Record) (string, error)

	// Update overwrites the given fields of an existing record.
	Update(ctx context.Context, objectName, id string, fields models.Record) error

	// Delete removes a record. Deleting a missing record returns [ErrNotFound].
	Delete(ctx context.Context, objectName, id string) error
}
