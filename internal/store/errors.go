// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Soup store errors. Callers match them with [errors.Is].
var (
	// ErrSoupNotFound is returned when an operation names a soup that was
	// never registered.
	ErrSoupNotFound = errors.New("soup is not registered")

	// ErrInvalidSoupName is returned when a soup name is not a plain
	// identifier ([A-Za-z_][A-Za-z0-9_]*).
	ErrInvalidSoupName = errors.New("invalid soup name")

	// ErrInvalidIndexSpec is returned for empty, duplicate or unknown-type
	// index specs.
	ErrInvalidIndexSpec = errors.New("invalid index spec")

	// ErrPathNotIndexed is returned when a query or an external-id upsert
	// references a path without an index.
	ErrPathNotIndexed = errors.New("path is not indexed")

	// ErrInvalidQuerySpec is returned for unknown query types, non-positive
	// page sizes and malformed match expressions.
	ErrInvalidQuerySpec = errors.New("invalid query spec")

	// ErrEntryNotFound is returned when an upsert targets a _soupEntryId that
	// does not exist in the soup.
	ErrEntryNotFound = errors.New("soup entry was not found")

	// ErrSyncStateNotFound is returned when a sync id is unknown.
	ErrSyncStateNotFound = errors.New("sync state was not found")

	// ErrRecordNotFound is returned by the server repository when no record
	// matches the object name and id.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordAlreadyExists is returned when a create collides with an
	// existing record id.
	ErrRecordAlreadyExists = errors.New("record already exists")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrDecodingEntry        = errors.New("failed to decode soup entry")
)
