// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-contacts-keeper/internal/adapter"
	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/notifier"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
)

type ClientServices struct {
	SyncEngine  RemoteSync
	Coordinator SyncCoordinator
	SyncJob     ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, recordAdapter adapter.RecordAdapter, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	engine := NewSyncEngine(storages, recordAdapter, cfg.ObjectName, logger)
	coordinator := NewSyncCoordinator(cfg, storages.SoupStore, storages.SyncStateRepository, engine, notifier.New(), logger)

	return &ClientServices{
		SyncEngine:  engine,
		Coordinator: coordinator,
		SyncJob:     NewClientSyncJob(coordinator),
	}
}
