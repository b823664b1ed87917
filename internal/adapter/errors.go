// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Errors mapped from record API status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("record not found")
	ErrConflict            = errors.New("record conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("record api internal error")
)

var (
	ErrMissingCredentials = errors.New("client id and secret are required")
	ErrEmptyToken         = errors.New("token endpoint returned an empty access token")
	ErrDecodingResponse   = errors.New("failed to decode record api response")
)
