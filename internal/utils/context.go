// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared by the client and the server:
// typed context keys, HMAC payload hashing, JSON responses, the resty HTTP
// client, JWT issuing and parsing, and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so values stored by this
// package never collide with string keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ClientIDCtxKey is the key under which the authenticated API client id is
// stored in a request context.
var ClientIDCtxKey = contextKey("clientID")

// GetClientIDFromContext retrieves the authenticated API client id.
// ok is false when the value is missing, empty or of an unexpected type.
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDCtxKey).(string)
	return clientID, ok && clientID != ""
}
