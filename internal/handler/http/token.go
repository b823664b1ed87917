// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-contacts-keeper/internal/app"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.issueToken").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.IssueToken(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "*Handler.issueToken", err)
		return
	}

	var expiresIn int64
	if token.ExpiresAt != nil && token.IssuedAt != nil {
		expiresIn = int64(token.ExpiresAt.Sub(token.IssuedAt.Time).Seconds())
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}

// writeError logs err and writes the status and message mapped from it.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	resp := responseFromError(err)

	event := logger.FromRequest(r).Warn()
	if resp.status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", resp.status).Msg(resp.message)

	utils.WriteError(w, resp.message, resp.status)
}
