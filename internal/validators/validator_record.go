// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

// Rule names accepted by [RecordValidator.Validate].
const (
	FieldObjectName   = "object_name"
	FieldRecordID     = "record_id"
	FieldQueryLimit   = "limit"
	FieldQueryFields  = "fields"
	FieldRecordFields = "record_fields"
	FieldEmail        = "email"
)

// maxValueLength bounds a single string value, in runes.
const maxValueLength = 1024

var identifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// RecordRef identifies one record of an object type.
type RecordRef struct {
	ObjectName string
	ID         string
}

type RecordValidator struct{}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case RecordRef:
		return v.validateRef(value, fields...)
	case *RecordRef:
		return v.validateRef(*value, fields...)

	case models.QueryRequest:
		return v.validateQuery(value, fields...)
	case *models.QueryRequest:
		return v.validateQuery(*value, fields...)

	case models.Record:
		return v.validateRecord(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRef(ref RecordRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldObjectName, FieldRecordID}
	}

	for _, f := range fields {
		switch f {
		case FieldObjectName:
			if !identifier.MatchString(ref.ObjectName) {
				return fmt.Errorf("%w: %q", ErrInvalidObjectName, ref.ObjectName)
			}
		case FieldRecordID:
			if strings.TrimSpace(ref.ID) == "" || strings.ContainsAny(ref.ID, "/?#") {
				return fmt.Errorf("%w: %q", ErrInvalidRecordID, ref.ID)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *RecordValidator) validateQuery(req models.QueryRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQueryLimit, FieldQueryFields}
	}

	for _, f := range fields {
		switch f {
		case FieldQueryLimit:
			if req.Limit < 0 {
				return fmt.Errorf("%w: %d", ErrInvalidLimit, req.Limit)
			}
		case FieldQueryFields:
			for _, name := range req.Fields {
				if !identifier.MatchString(name) {
					return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *RecordValidator) validateRecord(record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordFields, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordFields:
			for name, value := range record {
				if !identifier.MatchString(name) {
					return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
				}
				if !isScalar(value) {
					return fmt.Errorf("%w: %s", ErrInvalidFieldValue, name)
				}
			}
		case FieldEmail:
			email, ok := record.String(models.FieldEmail)
			if !ok || email == "" {
				continue
			}
			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// isScalar accepts the values a JSON record field may hold. Nested objects
// and arrays are rejected.
func isScalar(value any) bool {
	switch v := value.(type) {
	case nil, bool, json.Number, float64, int, int64:
		return true
	case string:
		return utf8.RuneCountInString(v) <= maxValueLength
	default:
		return false
	}
}
