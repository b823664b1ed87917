// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT access token issued to an API client.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access. SignedString holds the compact form sent in the
// Authorization header.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	// ClientID is a cached copy of the "sub" claim.
	ClientID string `json:"-"`
}

// GetClientID returns the API client identifier stored in the "sub" claim.
func (t *Token) GetClientID() (string, error) {
	clientID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting ClientID from token: %w", err)
	}
	if clientID == "" {
		return "", fmt.Errorf("error extracting ClientID from token: empty subject")
	}

	return clientID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
