// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates configuration for the client and
// server binaries.
//
// Sources are consulted in this order, the first non-zero value winning:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// [GetClientConfig] and [GetServerConfig] return validated views for each
// binary.
package config
