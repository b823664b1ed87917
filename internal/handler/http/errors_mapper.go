// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-contacts-keeper/internal/app"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap is checked in order, so specific errors come before the
// generic database ones they may wrap.
var errorStatusMap = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrUnsupportedGrantType, errorResponse{http.StatusBadRequest, app.MsgUnsupportedGrantType}},
	{service.ErrInvalidClientCredentials, errorResponse{http.StatusUnauthorized, app.MsgInvalidClientCredentials}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrHashMismatch, errorResponse{http.StatusConflict, app.MsgHashMismatch}},

	{store.ErrRecordNotFound, errorResponse{http.StatusNotFound, app.MsgRecordNotFound}},
	{store.ErrRecordAlreadyExists, errorResponse{http.StatusConflict, app.MsgRecordAlreadyExists}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}
