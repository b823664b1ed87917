// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-contacts-keeper/internal/adapter"
	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
	"github.com/MKhiriev/go-contacts-keeper/internal/tui"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/internal/workers"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type App struct {
	ui      UI
	workers BackgroundWorkers
	closer  io.Closer

	logger *logger.Logger
}

// NewApp builds the full client object graph from cfg: local store, record
// API adapter, sync services, TUI and the periodic sync worker.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	utils.InitHasherPool(cfg.App.HashKey)

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	recordAdapter, err := adapter.NewHTTPRecordAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create record adapter: %w", err)
	}

	services := service.NewClientServices(storages, recordAdapter, cfg.Sync, log)

	return newApp(
		tui.New(services.Coordinator, buildInfo, log),
		workers.NewClientWorkers(services, cfg.Workers, log),
		storages,
		log,
	), nil
}

func newApp(ui UI, w BackgroundWorkers, closer io.Closer, log *logger.Logger) *App {
	return &App{
		ui:      ui,
		workers: w,
		closer:  closer,
		logger:  log,
	}
}

// Run starts the background workers and blocks on the UI. Leaving the UI
// stops the workers and closes the local store.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if closeErr := a.closer.Close(); closeErr != nil {
			a.logger.Err(closeErr).Str("func", "*App.Run").Msg("close local storage")
			if err == nil {
				err = fmt.Errorf("close local storage: %w", closeErr)
			}
		}
	}()

	workersCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(workersCtx)

	g.Go(func() error {
		a.workers.Run(gctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		if err := a.ui.Run(ctx); err != nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	})

	err = g.Wait()
	cancel()
	a.logger.Info().Str("func", "*App.Run").Msg("client stopped")
	return err
}
