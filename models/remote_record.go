// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RemoteRecord is a record as kept by the record API server.
type RemoteRecord struct {
	ID               string
	ObjectName       string
	Fields           Record
	CreatedAt        time.Time
	LastModifiedDate time.Time
}

// ToRecord renders the stored record in the wire shape clients receive:
// the domain fields plus Id, LastModifiedDate and attributes.
func (r RemoteRecord) ToRecord() Record {
	out := make(Record, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	out[FieldID] = r.ID
	out[FieldLastModifiedDate] = r.LastModifiedDate.UTC().Format(time.RFC3339Nano)
	out[FieldAttributes] = Attributes{Type: r.ObjectName}
	return out
}
