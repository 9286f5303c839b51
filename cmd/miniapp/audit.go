// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/uratmangun/farcaster-mini-app/internal/db"
	"github.com/uratmangun/farcaster-mini-app/internal/i18n"
)

// newAuditCmd builds the audit subcommand, listing recorded runs newest
// first.
func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "List recorded generate and verify runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := db.DefaultStore()
			if s == nil {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("audit.disabled"))
				return nil
			}

			entries, err := s.GetAllAuditLogEntries()
			if err != nil {
				return fmt.Errorf("failed to read audit log: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("audit.empty"))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "TIMESTAMP\tUSER\tACTION\tDETAILS")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Username, e.Action, e.Details)
			}
			return w.Flush()
		},
	}
}
