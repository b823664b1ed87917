// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	coordinator SyncCoordinator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a job that calls coordinator.RefreshSync on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(coordinator SyncCoordinator) ClientSyncJob {
	return &clientSyncJob{coordinator: coordinator}
}

// Start stops any previously running job, then refreshes every interval until
// ctx is cancelled or Stop is called. A non-positive interval means 5 minutes.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// tick refreshes the soup. Without a sync down to resume, for instance after
// an offline start, it pulls everything instead.
func (j *clientSyncJob) tick(ctx context.Context) {
	log := logger.FromContext(ctx)

	_, err := j.coordinator.RefreshSync(ctx)
	if errors.Is(err, ErrNoSyncDown) {
		log.Info().Str("func", "*clientSyncJob.tick").Msg("no sync down to resume, pulling all records")
		_, err = j.coordinator.SyncDown(ctx)
	}

	switch {
	case err == nil, errors.Is(err, ErrSyncInFlight):
	case errors.Is(err, context.Canceled):
	default:
		log.Err(err).Str("func", "*clientSyncJob.tick").Msg("periodic refresh failed")
	}
}

// Stop cancels the background goroutine and waits for it to exit. Calling it
// on an idle job is a no-op.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
