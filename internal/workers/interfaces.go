// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background workers for the lifetime of
// a context.
package workers

import "context"

// Worker is a background task. Run blocks until ctx is cancelled and returns
// only after the worker has fully stopped.
type Worker interface {
	Run(ctx context.Context)
}
