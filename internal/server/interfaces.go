// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the record API server.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT arrives,
	// then shuts down gracefully.
	RunServer() error

	// Run serves requests until ctx is cancelled.
	Run(ctx context.Context) error
}
