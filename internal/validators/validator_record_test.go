// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-contacts-keeper/models"
)

func TestRecordValidator_RecordRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     any
		fields  []string
		wantErr error
	}{
		{name: "valid", ref: RecordRef{ObjectName: "Contact", ID: "003A"}},
		{name: "pointer", ref: &RecordRef{ObjectName: "Contact", ID: "003A"}},
		{name: "object only", ref: RecordRef{ObjectName: "Contact"}, fields: []string{FieldObjectName}},
		{name: "empty object", ref: RecordRef{ID: "003A"}, wantErr: ErrInvalidObjectName},
		{name: "object with spaces", ref: RecordRef{ObjectName: "Con tact", ID: "003A"}, wantErr: ErrInvalidObjectName},
		{name: "object starting with digit", ref: RecordRef{ObjectName: "1Contact", ID: "003A"}, wantErr: ErrInvalidObjectName},
		{name: "blank id", ref: RecordRef{ObjectName: "Contact", ID: "  "}, wantErr: ErrInvalidRecordID},
		{name: "id with slash", ref: RecordRef{ObjectName: "Contact", ID: "a/b"}, wantErr: ErrInvalidRecordID},
		{name: "unknown rule", ref: RecordRef{ObjectName: "Contact"}, fields: []string{"color"}, wantErr: ErrUnknownField},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.ref, tt.fields...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRecordValidator_QueryRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.QueryRequest
		wantErr error
	}{
		{name: "empty", req: models.QueryRequest{}},
		{name: "fields and limit", req: models.QueryRequest{Fields: []string{"FirstName", "Home_Phone2"}, Limit: 10}},
		{name: "negative limit", req: models.QueryRequest{Limit: -1}, wantErr: ErrInvalidLimit},
		{name: "injected field", req: models.QueryRequest{Fields: []string{"FirstName; DROP"}}, wantErr: ErrInvalidFieldName},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRecordValidator_Record(t *testing.T) {
	tests := []struct {
		name    string
		record  models.Record
		wantErr error
	}{
		{name: "nil record", record: nil},
		{
			name: "scalar values",
			record: models.Record{
				"FirstName": "Jane",
				"HomePhone": nil,
				"Rating":    json.Number("4"),
				"Active":    true,
				"Email":     "jane@example.com",
			},
		},
		{name: "empty email", record: models.Record{"Email": ""}},
		{name: "null email", record: models.Record{"Email": nil}},
		{name: "named email", record: models.Record{"Email": "Jane Doe <jane@example.com>"}},
		{name: "bad email", record: models.Record{"Email": "jane at example"}, wantErr: ErrInvalidEmail},
		{name: "nested object", record: models.Record{"Address": map[string]any{"City": "Oslo"}}, wantErr: ErrInvalidFieldValue},
		{name: "array", record: models.Record{"Tags": []any{"a"}}, wantErr: ErrInvalidFieldValue},
		{name: "too long", record: models.Record{"Title": strings.Repeat("x", maxValueLength+1)}, wantErr: ErrInvalidFieldValue},
		{name: "bad field name", record: models.Record{"First Name": "Jane"}, wantErr: ErrInvalidFieldName},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.record)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRecordValidator_UnsupportedType(t *testing.T) {
	err := NewRecordValidator().Validate(context.Background(), 42)

	assert.ErrorIs(t, err, ErrUnsupportedType)
}
