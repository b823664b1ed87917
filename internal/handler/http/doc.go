// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the record API served to contacts clients.
//
// It exposes route wiring, request handlers and middleware. Cross-cutting
// concerns such as client authentication, request tracing, access logging,
// request metrics, response compression and payload integrity checks are
// handled here before requests reach the service layer.
package http
