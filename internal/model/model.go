// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the shared data types persisted by the audit store.
package model

import "fmt"

// AuditLogEntry is one recorded tool run: who did what to which manifest.
type AuditLogEntry struct {
	ID        int
	Timestamp string
	Username  string
	Action    string
	Details   string
}

// String renders an entry the way the audit listing prints it.
func (e AuditLogEntry) String() string {
	return fmt.Sprintf("%s %s %s: %s", e.Timestamp, e.Username, e.Action, e.Details)
}
