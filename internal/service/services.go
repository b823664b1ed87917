// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
)

type Services struct {
	AuthService    AuthService
	RecordService  RecordService
	AppInfoService AppInfoService
}

func NewServices(storages *store.ServerStorages, cfg config.ServerApp, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(cfg, logger),
		RecordService:  NewRecordService(storages.RecordRepository, logger),
		AppInfoService: appInfo,
	}, nil
}
