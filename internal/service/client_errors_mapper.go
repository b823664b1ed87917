// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-contacts-keeper/internal/adapter"
	"github.com/MKhiriev/go-contacts-keeper/internal/app"
)

// Errors the record API reports through a status code and a known message.
var (
	ErrHashMismatch        = errors.New("record hash mismatch")
	ErrRemoteRecordMissing = errors.New("record no longer exists on the server")
)

// mapAdapterError translates the adapter's transport error into a service
// error. The cause stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	var mapped error
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		if msg == app.MsgInvalidDataProvided {
			mapped = ErrInvalidDataProvided
		}
	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidClientCredentials:
			mapped = ErrInvalidClientCredentials
		case app.MsgTokenIsExpiredOrInvalid:
			mapped = ErrTokenIsExpiredOrInvalid
		}
	case errors.Is(err, adapter.ErrNotFound):
		mapped = ErrRemoteRecordMissing
	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgHashMismatch {
			mapped = ErrHashMismatch
		}
	}

	if mapped == nil {
		return err
	}
	return errors.Join(mapped, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>".
// Wrapping prefixes added by the adapter are skipped.
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
