// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
// If marshaling fails, it responds with 500 and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a JSON error body in the shape the record API clients
// expect: {"errorCode": "...", "message": "..."}.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, models.ErrorResponse{
		ErrorCode: http.StatusText(statusCode),
		Message:   message,
	}, statusCode)
}
