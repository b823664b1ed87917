// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService issues and verifies access tokens for API clients.
type AuthService interface {
	IssueToken(ctx context.Context, req models.TokenRequest) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService serves the records of the remote record API.
type RecordService interface {
	// Query returns the records of objectName, oldest modification first.
	// Each record carries req.Fields plus Id, LastModifiedDate and attributes.
	Query(ctx context.Context, objectName string, req models.QueryRequest) ([]models.Record, error)

	Create(ctx context.Context, objectName string, fields models.Record) (models.SaveResponse, error)

	// Update merges fields into the stored record.
	Update(ctx context.Context, objectName, id string, fields models.Record) (models.SaveResponse, error)

	Delete(ctx context.Context, objectName, id string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
