// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// SyncType tells pulls and pushes apart in persisted sync states.
type SyncType string

const (
	SyncTypeDown SyncType = "syncDown"
	SyncTypeUp   SyncType = "syncUp"
)

// SyncStatus is the lifecycle status of a sync operation.
type SyncStatus string

const (
	SyncStatusNew     SyncStatus = "NEW"
	SyncStatusRunning SyncStatus = "RUNNING"
	SyncStatusDone    SyncStatus = "DONE"
	SyncStatusFailed  SyncStatus = "FAILED"
)

// MergeMode controls how pulled records are merged into the local store.
// Only OVERWRITE (remote wins) is supported.
type MergeMode string

const MergeModeOverwrite MergeMode = "OVERWRITE"

// SyncOptions carries the merge mode and, for pushes, the fields sent to the
// remote system.
type SyncOptions struct {
	MergeMode MergeMode `json:"mergeMode"`
	FieldList []string  `json:"fieldlist,omitempty"`
}

// TargetTypeQuery is the only sync-down target kind: a field selection over
// one remote object with a row limit.
const TargetTypeQuery = "query"

// SyncDownTarget describes what a sync down pulls.
type SyncDownTarget struct {
	Type       string   `json:"type"`
	ObjectName string   `json:"objectName"`
	Fields     []string `json:"fields"`
	Limit      int      `json:"limit"`
}

// Query renders the target as the query text sent to the remote system.
func (t SyncDownTarget) Query() string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d", strings.Join(t.Fields, ","), t.ObjectName, t.Limit)
}

// SyncState is the persisted record of one sync operation. Sync downs keep
// their state so a later re-sync can resume from MaxTimeStamp.
type SyncState struct {
	ID        int64           `json:"_soupEntryId"`
	Type      SyncType        `json:"type"`
	Target    *SyncDownTarget `json:"target,omitempty"`
	Options   SyncOptions     `json:"options"`
	SoupName  string          `json:"soupName"`
	Status    SyncStatus      `json:"status"`
	Progress  int             `json:"progress"`
	TotalSize int             `json:"totalSize"`
	// MaxTimeStamp is the newest LastModifiedDate seen by the pull; nil until
	// the first record arrives.
	MaxTimeStamp *time.Time `json:"maxTimeStamp,omitempty"`
	// Rejected counts the records of a sync up the remote system refused.
	// They stay dirty and Error lists them.
	Rejected int    `json:"rejected,omitempty"`
	Error    string `json:"error,omitempty"`
}

// IsDone reports whether the sync completed successfully.
func (s SyncState) IsDone() bool {
	return s.Status == SyncStatusDone
}

// IsPartial reports whether a completed sync up left rejected records behind.
func (s SyncState) IsPartial() bool {
	return s.IsDone() && s.Rejected > 0
}
