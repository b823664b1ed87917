// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

// Built-in defaults. They describe the contacts mirror the client was made for.
const (
	DefaultObjectName     = "Contact"
	DefaultSoupName       = "contacts"
	DefaultRecordLimit    = 10000
	DefaultSyncInterval   = 5 * time.Minute
	DefaultRequestTimeout = 30 * time.Second
	DefaultTokenDuration  = time.Hour
	DefaultTokenIssuer    = "go-contacts-keeper"
	DefaultLocalDSN       = "contacts.db"
	DefaultServerAddress  = "localhost:8080"
)

// DefaultFieldList is the set of Contact fields pulled on sync down.
var DefaultFieldList = []string{
	models.FieldFirstName,
	models.FieldLastName,
	models.FieldTitle,
	models.FieldMobilePhone,
	models.FieldEmail,
	models.FieldDepartment,
	models.FieldHomePhone,
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			Local: Local{DSN: DefaultLocalDSN},
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Sync: Sync{
			ObjectName:  DefaultObjectName,
			SoupName:    DefaultSoupName,
			FieldList:   append([]string(nil), DefaultFieldList...),
			RecordLimit: DefaultRecordLimit,
		},
		Workers: Workers{
			SyncInterval: DefaultSyncInterval,
		},
	}
}
