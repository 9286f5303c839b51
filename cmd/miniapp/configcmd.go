// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uratmangun/farcaster-mini-app/internal/config"
	"github.com/uratmangun/farcaster-mini-app/internal/i18n"
)

// newConfigCmd builds the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the miniapp configuration file",
	}

	var system bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter miniapp.yaml with the current settings",
		Long: `Writes the currently resolved configuration (defaults, environment, and
flags) to the user config directory, or the system-wide location with
--system. The file is created with mode 0600 because it may hold a
private key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteConfigFile(&cfg, system)
			if err != nil {
				return fmt.Errorf("could not write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.written", path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "write the system-wide configuration")

	cmd.AddCommand(initCmd)
	return cmd
}
