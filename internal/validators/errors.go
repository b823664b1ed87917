// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidObjectName = errors.New("invalid object name")
	ErrInvalidRecordID   = errors.New("invalid record id")
	ErrInvalidLimit      = errors.New("invalid query limit")
	ErrInvalidFieldName  = errors.New("invalid field name")
	ErrInvalidFieldValue = errors.New("invalid field value")
	ErrInvalidEmail      = errors.New("invalid email address")
)
