// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/handler"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/server"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("contacts-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}
	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("version", cfg.App.Version).Msg("received configs")

	utils.InitHasherPool(cfg.App.HashKey)

	ctx := log.WithContext(context.Background())
	storages, err := store.NewServerStorages(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
