// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-contacts-keeper/internal/app"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

// checkHash verifies that RecordRequest.Hash is the HMAC of its fields and
// answers 409 with app.MsgHashMismatch otherwise. The body is restored for
// the next handler.
func (h *Handler) checkHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkHash").Msg("failed to read request body")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req models.RecordRequest
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err = dec.Decode(&req); err != nil {
			log.Err(err).Str("func", "*Handler.checkHash").Msg("failed to decode JSON")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		hashedBody, err := utils.HashPayload(req.Fields)
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkHash").Msg("failed to hash fields")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if !hmac.Equal([]byte(hashedBody), []byte(req.Hash)) {
			log.Error().Str("func", "*Handler.checkHash").
				Str("hash from request", req.Hash).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			utils.WriteError(w, app.MsgHashMismatch, http.StatusConflict)
			return
		}

		next.ServeHTTP(w, r)
	})
}
