// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the message strings shared by the record API handlers
// and the client, which maps them back to typed errors.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or misses required fields.
	MsgInvalidDataProvided = "invalid data provided"

	MsgInternalServerError = "internal server error"

	// MsgInvalidClientCredentials is returned by the token endpoint when the
	// client id or secret does not match.
	MsgInvalidClientCredentials = "invalid client credentials"

	MsgUnsupportedGrantType = "unsupported grant type"

	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgHashMismatch is returned when the HMAC of a pushed record does not
	// match its fields.
	MsgHashMismatch = "record hash mismatch"

	MsgRecordNotFound      = "record not found"
	MsgRecordAlreadyExists = "record already exists"

	MsgVersionIsNotSpecified = "version is not specified"
)
