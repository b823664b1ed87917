// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"maps"
	"strconv"
	"strings"
	"time"
)

// System fields carried by every record kept in a soup. Field names follow the
// remote record system, which is why they are not Go-cased.
const (
	// FieldSoupEntryID is the store-internal primary key assigned on first upsert.
	FieldSoupEntryID = "_soupEntryId"
	// FieldSoupLastModifiedDate is the store-internal modification time (unix millis).
	FieldSoupLastModifiedDate = "_soupLastModifiedDate"

	// FieldID is the remote identifier, or a local_<n> placeholder for records
	// created offline.
	FieldID = "Id"
	// FieldLastModifiedDate is the remote modification timestamp.
	FieldLastModifiedDate = "LastModifiedDate"
	// FieldAttributes holds remote metadata such as the record type.
	FieldAttributes = "attributes"

	FieldLocal          = "__local__"
	FieldLocallyCreated = "__locally_created__"
	FieldLocallyUpdated = "__locally_updated__"
	FieldLocallyDeleted = "__locally_deleted__"

	// FieldSyncError holds the reason the remote system rejected the last
	// push of a dirty record.
	FieldSyncError = "__sync_error__"
)

// Contact fields.
const (
	FieldFirstName   = "FirstName"
	FieldLastName    = "LastName"
	FieldTitle       = "Title"
	FieldEmail       = "Email"
	FieldMobilePhone = "MobilePhone"
	FieldHomePhone   = "HomePhone"
	FieldDepartment  = "Department"
)

// LocalIDPrefix marks identifiers generated on the device for records that the
// remote system has not seen yet.
const LocalIDPrefix = "local_"

// Record is a single soup entry: a mapping of field name to value. Values are
// whatever JSON decoding produces (string, bool, json.Number, nested maps, nil).
type Record map[string]any

// Attributes describes the remote type of a record.
type Attributes struct {
	Type string `json:"type"`
}

// ID returns the remote (or local placeholder) identifier.
func (r Record) ID() string {
	s, _ := r.String(FieldID)
	return s
}

// HasLocalID reports whether the record id was generated offline.
func (r Record) HasLocalID() bool {
	return strings.HasPrefix(r.ID(), LocalIDPrefix)
}

// SoupEntryID returns the store-internal id. ok is false for records that were
// never persisted.
func (r Record) SoupEntryID() (id int64, ok bool) {
	return r.Int64(FieldSoupEntryID)
}

// SetSoupEntryID stamps the store-internal id.
func (r Record) SetSoupEntryID(id int64) {
	r[FieldSoupEntryID] = id
}

// String returns the string value of field. A nil value reports ok=false.
func (r Record) String(field string) (string, bool) {
	switch v := r[field].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

// Int64 returns the integer value of field regardless of how it was decoded.
func (r Record) Int64(field string) (int64, bool) {
	switch v := r[field].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Bool returns the boolean value of field; missing or non-bool values are false.
func (r Record) Bool(field string) bool {
	switch v := r[field].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Time parses field as an RFC 3339 timestamp.
func (r Record) Time(field string) (time.Time, bool) {
	switch v := r[field].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

func (r Record) IsLocal() bool          { return r.Bool(FieldLocal) }
func (r Record) IsLocallyCreated() bool { return r.Bool(FieldLocallyCreated) }
func (r Record) IsLocallyUpdated() bool { return r.Bool(FieldLocallyUpdated) }
func (r Record) IsLocallyDeleted() bool { return r.Bool(FieldLocallyDeleted) }

// MarkLocallyUpdated flags the record as edited on the device so the next
// sync up pushes it.
func (r Record) MarkLocallyUpdated() {
	r[FieldLocal] = true
	r[FieldLocallyUpdated] = true
	r.ClearSyncError()
}

// MarkLocallyDeleted flags the record for remote deletion on the next sync up.
func (r Record) MarkLocallyDeleted() {
	r[FieldLocal] = true
	r[FieldLocallyDeleted] = true
}

// ClearLocalFlags resets dirty tracking after the record was reconciled with
// the remote system.
func (r Record) ClearLocalFlags() {
	r[FieldLocal] = false
	r[FieldLocallyCreated] = false
	r[FieldLocallyUpdated] = false
	r[FieldLocallyDeleted] = false
	r.ClearSyncError()
}

// SyncError returns the rejection recorded by the last sync up, if any.
func (r Record) SyncError() string {
	msg, _ := r.String(FieldSyncError)
	return msg
}

func (r Record) ClearSyncError() {
	delete(r, FieldSyncError)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Pick returns a new record holding only the listed fields. Missing fields are
// copied as nil so the remote side receives an explicit null.
func (r Record) Pick(fields []string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		out[f] = r[f]
	}
	return out
}
