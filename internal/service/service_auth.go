// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

// authService implements the client-credentials grant for the single API
// client configured on the server.
type authService struct {
	clientID         string
	clientSecretHash []byte

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the server app settings.
// The returned service is read-only after construction.
func NewAuthService(cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		clientID:         cfg.ClientID,
		clientSecretHash: []byte(cfg.ClientSecretHash),
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// IssueToken verifies the client credentials and returns a signed JWT whose
// subject is the client id.
//
// Returns:
//   - ErrUnsupportedGrantType for any grant other than client_credentials.
//   - ErrInvalidDataProvided if the client id or secret is empty.
//   - ErrInvalidClientCredentials if the id is unknown or the secret does
//     not match the configured bcrypt hash.
func (a *authService) IssueToken(ctx context.Context, req models.TokenRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if req.GrantType != models.GrantTypeClientCredentials {
		log.Warn().Str("func", "*authService.IssueToken").Str("grant_type", req.GrantType).Msg("unsupported grant type")
		return models.Token{}, ErrUnsupportedGrantType
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		log.Warn().Str("func", "*authService.IssueToken").Msg("empty client credentials")
		return models.Token{}, ErrInvalidDataProvided
	}

	idMatches := subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(a.clientID)) == 1
	if err := bcrypt.CompareHashAndPassword(a.clientSecretHash, []byte(req.ClientSecret)); err != nil || !idMatches {
		log.Warn().Str("func", "*authService.IssueToken").Str("client_id", req.ClientID).Msg("invalid client credentials")
		return models.Token{}, ErrInvalidClientCredentials
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, req.ClientID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.IssueToken").Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Any validation failure (expired, wrong
// issuer, malformed) is reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
