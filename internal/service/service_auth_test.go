// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

const (
	testClientID     = "contacts-mobile"
	testClientSecret = "s3cret"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testClientSecret), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(config.ServerApp{
		TokenSignKey:     "sign-key",
		TokenIssuer:      "contacts-keeper",
		TokenDuration:    time.Hour,
		ClientID:         testClientID,
		ClientSecretHash: string(hash),
	}, logger.Nop())
}

// ── IssueToken ───────────────────────────────────────────────────────────────

func TestAuthService_IssueToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.IssueToken(context.Background(), models.TokenRequest{
		GrantType:    models.GrantTypeClientCredentials,
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, testClientID, token.ClientID)
	assert.Equal(t, "contacts-keeper", token.Issuer)
}

func TestAuthService_IssueToken_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     models.TokenRequest
		wantErr error
	}{
		{
			name:    "password grant",
			req:     models.TokenRequest{GrantType: "password", ClientID: testClientID, ClientSecret: testClientSecret},
			wantErr: ErrUnsupportedGrantType,
		},
		{
			name:    "missing secret",
			req:     models.TokenRequest{GrantType: models.GrantTypeClientCredentials, ClientID: testClientID},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "wrong secret",
			req:     models.TokenRequest{GrantType: models.GrantTypeClientCredentials, ClientID: testClientID, ClientSecret: "nope"},
			wantErr: ErrInvalidClientCredentials,
		},
		{
			name:    "unknown client",
			req:     models.TokenRequest{GrantType: models.GrantTypeClientCredentials, ClientID: "other", ClientSecret: testClientSecret},
			wantErr: ErrInvalidClientCredentials,
		},
	}

	svc := newTestAuthService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.IssueToken(context.Background(), tt.req)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, token.SignedString)
		})
	}
}

// ── ParseToken ───────────────────────────────────────────────────────────────

func TestAuthService_ParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, models.TokenRequest{
		GrantType:    models.GrantTypeClientCredentials,
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
	})
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, issued.SignedString)

	require.NoError(t, err)
	assert.Equal(t, testClientID, parsed.ClientID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(t)

	foreign, err := utils.GenerateJWTToken("someone-else", testClientID, time.Hour, "sign-key")
	require.NoError(t, err)
	otherKey, err := utils.GenerateJWTToken("contacts-keeper", testClientID, time.Hour, "other-key")
	require.NoError(t, err)
	expired, err := utils.GenerateJWTToken("contacts-keeper", testClientID, -time.Minute, "sign-key")
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":        "not-a-jwt",
		"foreign issuer": foreign.SignedString,
		"other key":      otherKey.SignedString,
		"expired":        expired.SignedString,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), raw)
			require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
