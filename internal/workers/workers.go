// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/service"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewClientWorkers returns the client's workers: the periodic refresh.
func NewClientWorkers(services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{newSyncWorker(services.SyncJob, cfg.SyncInterval)},
		logger:  logger,
	}
}

// Run starts every worker concurrently and blocks until all of them have
// stopped after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() { worker.Run(ctx) })
	}
	wg.Wait()

	if w.logger != nil {
		w.logger.Info().Int("count", len(w.workers)).Msg("workers stopped")
	}
}

type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func newSyncWorker(job service.ClientSyncJob, interval time.Duration) *syncWorker {
	return &syncWorker{job: job, interval: interval}
}

func (s *syncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
	<-ctx.Done()
	s.job.Stop()
}
