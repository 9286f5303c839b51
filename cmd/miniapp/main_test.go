// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testKeyHex = "4242424242424242424242424242424242424242424242424242424242424242"

// runCLI executes a fresh root command in an isolated temp working
// directory with auditing disabled unless the test overrides the DSN.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	tmp := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	t.Setenv("XDG_CONFIG_HOME", tmp)
	if os.Getenv("MINIAPP_DATABASE_DSN") == "" {
		t.Setenv("MINIAPP_DATABASE_DSN", "")
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), err
}

func TestGenerateThenVerifyEndToEnd(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), ".well-known", "farcaster.json")

	out, err := runCLI(t,
		"generate",
		"--fid", "3621",
		"--private-key", testKeyHex,
		"--domain", "example.com",
		"--manifest", manifestPath,
	)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "production ready: true") {
		t.Errorf("generate output missing production-ready line:\n%s", out)
	}
	if _, err := os.Stat(manifestPath); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}

	out, err = runCLI(t, "verify", "--manifest", manifestPath)
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "production ready: true") {
		t.Errorf("verify output missing production-ready line:\n%s", out)
	}
	for _, flag := range []string{"header decodable", "payload decodable", "fid valid", "domain valid", "signature valid"} {
		if !strings.Contains(out, flag) {
			t.Errorf("verify report missing %q:\n%s", flag, out)
		}
	}
}

func TestGenerateRejectsSchemePrefixedDomain(t *testing.T) {
	out, err := runCLI(t,
		"generate",
		"--fid", "3621",
		"--private-key", testKeyHex,
		"--domain", "https://example.com",
		"--manifest", filepath.Join(t.TempDir(), "farcaster.json"),
	)
	if err == nil {
		t.Fatalf("expected failure for scheme-prefixed domain, output:\n%s", out)
	}
	if !strings.Contains(err.Error(), "scheme") {
		t.Errorf("error should mention the scheme: %v", err)
	}
}

func TestGenerateRequiresPrivateKeyWhenNotInteractive(t *testing.T) {
	_, err := runCLI(t,
		"generate",
		"--fid", "1",
		"--domain", "example.com",
		"--manifest", filepath.Join(t.TempDir(), "farcaster.json"),
	)
	if err == nil {
		t.Fatal("expected failure without a private key")
	}
	if !strings.Contains(err.Error(), "private_key") {
		t.Errorf("error should name private_key: %v", err)
	}
}

func TestVerifyMissingManifestFails(t *testing.T) {
	_, err := runCLI(t, "verify", "--manifest", filepath.Join(t.TempDir(), "nope", "farcaster.json"))
	if err == nil {
		t.Fatal("expected failure for a missing manifest")
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Errorf("version output = %q", out)
	}
}
