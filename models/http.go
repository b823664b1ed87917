// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TokenRequest exchanges API client credentials for an access token.
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// GrantTypeClientCredentials is the only grant the record API accepts.
const GrantTypeClientCredentials = "client_credentials"

// QueryRequest asks the record API for records of one object type.
type QueryRequest struct {
	// Fields to return besides Id and LastModifiedDate, which are always sent.
	Fields []string `json:"fields"`

	// Limit caps the number of returned records. Zero means the server default.
	Limit int `json:"limit,omitempty"`

	// ModifiedSince restricts the result to records modified strictly after
	// the given instant. Used by re-sync.
	ModifiedSince *time.Time `json:"modifiedSince,omitempty"`
}

// RecordRequest carries the fields of a record being created or updated,
// together with the HMAC of Fields so the server can verify integrity.
type RecordRequest struct {
	Fields Record `json:"fields"`
	Hash   string `json:"hash,omitempty"`
}
