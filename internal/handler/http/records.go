// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-contacts-keeper/internal/app"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

func (h *Handler) queryRecords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	objectName := chi.URLParam(r, "object")

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.queryRecords").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	records, err := h.services.RecordService.Query(r.Context(), objectName, req)
	if err != nil {
		h.writeError(w, r, "*Handler.queryRecords", err)
		return
	}

	log.Debug().
		Str("func", "*Handler.queryRecords").
		Str("object", objectName).
		Int("count", len(records)).
		Msg("records queried")

	utils.WriteJSON(w, models.QueryResponse{
		TotalSize: len(records),
		Done:      true,
		Records:   records,
	}, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	objectName := chi.URLParam(r, "object")

	req, ok := decodeRecordRequest(w, r, "*Handler.createRecord")
	if !ok {
		return
	}

	saved, err := h.services.RecordService.Create(r.Context(), objectName, req.Fields)
	if err != nil {
		h.writeError(w, r, "*Handler.createRecord", err)
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	objectName := chi.URLParam(r, "object")
	id := chi.URLParam(r, "id")

	req, ok := decodeRecordRequest(w, r, "*Handler.updateRecord")
	if !ok {
		return
	}

	saved, err := h.services.RecordService.Update(r.Context(), objectName, id, req.Fields)
	if err != nil {
		h.writeError(w, r, "*Handler.updateRecord", err)
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	objectName := chi.URLParam(r, "object")
	id := chi.URLParam(r, "id")

	if err := h.services.RecordService.Delete(r.Context(), objectName, id); err != nil {
		h.writeError(w, r, "*Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeRecordRequest reads a RecordRequest keeping numbers as json.Number,
// so that re-encoding the fields yields the bytes the client hashed.
func decodeRecordRequest(w http.ResponseWriter, r *http.Request, fn string) (models.RecordRequest, bool) {
	var req models.RecordRequest

	body, err := io.ReadAll(r.Body)
	if err == nil {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		err = dec.Decode(&req)
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.RecordRequest{}, false
	}

	return req, true
}
