// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Coordinator outcomes that are not failures. Callers drop them silently.
var (
	// ErrSyncInFlight is returned when a sync operation is requested while
	// another one of the same coordinator is still running.
	ErrSyncInFlight = errors.New("sync already in progress")

	// ErrStaleResponse is returned by Search when a newer search has already
	// delivered its results.
	ErrStaleResponse = errors.New("stale search response")
)

// Sync errors.
var (
	ErrNoSyncDown           = errors.New("re-sync requested before any successful sync down")
	ErrUnsupportedMergeMode = errors.New("unsupported merge mode")
	ErrInvalidSyncTarget    = errors.New("invalid sync down target")
	ErrNotSyncDown          = errors.New("sync state is not a sync down")
	ErrRecordNotPersisted   = errors.New("record has no soup entry id")
	ErrMissingRemoteID      = errors.New("remote system returned no record id")
	ErrRecordsRejected      = errors.New("records rejected by the server")
)

// Record API errors.
var (
	ErrInvalidDataProvided      = errors.New("invalid data provided")
	ErrUnsupportedGrantType     = errors.New("unsupported grant type")
	ErrInvalidClientCredentials = errors.New("invalid client credentials")
	ErrTokenCreationFailed      = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid  = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified    = errors.New("app version is not specified")
)
