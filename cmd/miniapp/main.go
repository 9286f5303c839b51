// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for the miniapp tool using
// Cobra: the root command, the generate/verify/audit/config subcommands,
// and the shared configuration plumbing.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/uratmangun/farcaster-mini-app/internal/config"
	"github.com/uratmangun/farcaster-mini-app/internal/db"
	"github.com/uratmangun/farcaster-mini-app/internal/i18n"
	"github.com/uratmangun/farcaster-mini-app/internal/logging"
)

// version is set by the linker, e.g.
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

var (
	cfgFile string
	cfg     config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

// newRootCmd creates a fully wired root command. Tests build fresh
// instances for isolation.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "miniapp",
		Short: "miniapp manages the account association of a Farcaster mini app.",
		Long: `miniapp generates and verifies the signed account association that
proves a mini app's hosting domain is endorsed by a Farcaster account's
custody key. The association is stored inside .well-known/farcaster.json
next to the rest of the app manifest.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig[config.Config](cmd, config.Defaults(), &cfgFile)
			if err != nil {
				return err
			}
			i18n.Init(cfg.Language)
			logging.SetDebug(cfg.Debug)
			if err := db.InitDB(cfg.Database.Type, cfg.Database.Dsn); err != nil {
				// The audit trail is a convenience; a broken store must not
				// block generating or verifying an association.
				logging.Warnf("%s", i18n.T("config.error_init_db", err))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s := db.DefaultStore(); s != nil {
				_ = s.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a miniapp.yaml config file")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("language", "", "interface language (en, de)")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newAuditCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// logAction writes an audit entry when a store is configured. Command code
// never touches the store directly.
func logAction(action, details string) {
	if s := db.DefaultStore(); s != nil {
		if err := s.LogAction(action, details); err != nil {
			logging.Warnf("audit entry not recorded: %v", err)
		}
	}
}
