// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"os/user"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uratmangun/farcaster-mini-app/internal/model"
)

// AuditLogModel maps the audit_log table for Bun queries.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp"`
	Username      string `bun:"username"`
	Action        string `bun:"action"`
	Details       string `bun:"details"`
}

// bunStore implements Store over a *bun.DB of any supported dialect.
type bunStore struct {
	bun *bun.DB
}

func (s *bunStore) LogAction(action, details string) error {
	ctx := context.Background()
	_, err := s.bun.NewInsert().Model(&AuditLogModel{
		Username: currentUsername(),
		Action:   action,
		Details:  details,
	}).Column("username", "action", "details").Exec(ctx)
	return err
}

func (s *bunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var am []AuditLogModel
	if err := s.bun.NewSelect().Model(&am).OrderExpr("id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(am))
	for _, a := range am {
		out = append(out, model.AuditLogEntry{
			ID:        a.ID,
			Timestamp: a.Timestamp,
			Username:  a.Username,
			Action:    a.Action,
			Details:   a.Details,
		})
	}
	return out, nil
}

func (s *bunStore) Close() error {
	return s.bun.Close()
}

// currentUsername resolves the invoking OS user, trimming a Windows
// DOMAIN\ prefix.
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if parts := strings.Split(u.Username, `\`); len(parts) > 1 {
		return parts[1]
	}
	return u.Username
}
