// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "context"

// Validator checks request values before they reach storage.
type Validator interface {
	// Validate checks obj. When fields is empty every rule for the type of
	// obj is applied, otherwise only the named ones.
	Validate(ctx context.Context, obj any, fields ...string) error
}
