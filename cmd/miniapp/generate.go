// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uratmangun/farcaster-mini-app/internal/association"
	"github.com/uratmangun/farcaster-mini-app/internal/i18n"
	"github.com/uratmangun/farcaster-mini-app/internal/manifest"
	"golang.org/x/term"
)

// newGenerateCmd builds the generate subcommand: credentials in, signed
// and self-verified association out, merged into the manifest on disk.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the account association and write it into the manifest",
		Long: `Generate derives the custody public key from the configured private key,
builds and signs the domain-ownership message, verifies the fresh
signature, and replaces the accountAssociation entry of the manifest.
All other manifest fields are preserved untouched.

The private key can come from a flag, the MINIAPP_PRIVATE_KEY environment
variable, or the config file; when none is set it is prompted for without
echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyHex := cfg.PrivateKey
			if keyHex == "" {
				var err error
				keyHex, err = promptPrivateKey()
				if err != nil {
					return err
				}
			}

			creds, err := association.NewCredentials(cfg.FID, keyHex, cfg.Domain)
			if err != nil {
				return err
			}
			defer creds.PrivateKey.Zero()

			assoc, err := association.Generate(creds)
			if err != nil {
				return err
			}

			m := manifest.Load(cfg.Manifest)
			if err := m.SetAssociation(assoc); err != nil {
				return err
			}
			if err := m.Save(cfg.Manifest); err != nil {
				return err
			}

			logAction("GENERATE_ASSOCIATION", fmt.Sprintf("fid: %d, domain: %s, manifest: %s", creds.FID, creds.Domain, cfg.Manifest))

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("generate.success", creds.FID, creds.Domain))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("generate.saved", cfg.Manifest))
			printReport(cmd, association.Verify(assoc))
			return nil
		},
	}

	cmd.Flags().Uint64("fid", 0, "Farcaster account id (fid)")
	cmd.Flags().String("private-key", "", "custody private key as 64 hex characters")
	cmd.Flags().String("domain", "", "hosting domain, bare (no scheme, no trailing slash)")
	cmd.Flags().String("manifest", "", "path to the farcaster.json manifest")

	return cmd
}

// promptPrivateKey reads the key from the terminal without echo. Refused
// when stdin is not a terminal so scripts fail loudly instead of hanging.
func promptPrivateKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", &association.ConfigError{Field: "private_key", Reason: "is required (set --private-key, MINIAPP_PRIVATE_KEY, or run interactively)"}
	}
	fmt.Fprint(os.Stderr, i18n.T("generate.prompt_key"))
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading private key: %w", err)
	}
	return string(raw), nil
}
