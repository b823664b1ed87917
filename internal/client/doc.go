// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the contacts TUI, the sync coordinator and the periodic sync
// worker into a single process lifecycle.
package client
