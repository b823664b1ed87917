// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// QueryResponse is one batch of records ordered by LastModifiedDate
// ascending, so the last record carries the newest timestamp.
type QueryResponse struct {
	TotalSize int      `json:"totalSize"`
	Done      bool     `json:"done"`
	Records   []Record `json:"records"`
}

// SaveResponse is returned by create and update.
type SaveResponse struct {
	ID               string    `json:"id"`
	Success          bool      `json:"success"`
	LastModifiedDate time.Time `json:"LastModifiedDate"`
}

// ErrorResponse is the body of every non-2xx record API response.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}
