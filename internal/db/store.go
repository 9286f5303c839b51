// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/uratmangun/farcaster-mini-app/internal/model"

// Store is the audit-trail interface the rest of the tool talks to.
type Store interface {
	// LogAction records one tool run with the invoking OS user.
	LogAction(action, details string) error
	// GetAllAuditLogEntries returns every recorded run, newest first.
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
	// Close releases the underlying connection.
	Close() error
}
