// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAuditDisabledByEmptyDSN(t *testing.T) {
	out, err := runCLI(t, "audit")
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if !strings.Contains(out, "disabled") {
		t.Errorf("expected disabled notice, got:\n%s", out)
	}
}

func TestGenerateRecordsAuditEntry(t *testing.T) {
	scratch := t.TempDir()
	dsn := filepath.Join(scratch, "audit.db")
	t.Setenv("MINIAPP_DATABASE_DSN", dsn)
	manifestPath := filepath.Join(scratch, "farcaster.json")

	out, err := runCLI(t,
		"generate",
		"--fid", "99",
		"--private-key", testKeyHex,
		"--domain", "example.com",
		"--manifest", manifestPath,
	)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	out, err = runCLI(t, "audit")
	if err != nil {
		t.Fatalf("audit failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "GENERATE_ASSOCIATION") {
		t.Errorf("audit listing missing generate entry:\n%s", out)
	}
	if !strings.Contains(out, "fid: 99") {
		t.Errorf("audit details missing fid:\n%s", out)
	}
}

func TestVerifyStrictFailsOnCorruptedSignature(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "farcaster.json")

	out, err := runCLI(t,
		"generate",
		"--fid", "7",
		"--private-key", testKeyHex,
		"--domain", "example.com",
		"--manifest", manifestPath,
	)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	// Corrupt one character of the stored signature.
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	var assoc map[string]string
	if err := json.Unmarshal(doc["accountAssociation"], &assoc); err != nil {
		t.Fatalf("parse association: %v", err)
	}
	sig := []byte(assoc["signature"])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	assoc["signature"] = string(sig)
	doc["accountAssociation"], _ = json.Marshal(assoc)
	data, _ = json.Marshal(doc)
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		t.Fatalf("rewrite manifest: %v", err)
	}

	// Plain verify still exits zero: the report ran, it just reports failure.
	out, err = runCLI(t, "verify", "--manifest", manifestPath)
	if err != nil {
		t.Fatalf("non-strict verify should exit zero: %v\n%s", err, out)
	}
	if !strings.Contains(out, "production ready: false") {
		t.Errorf("report should not be production ready:\n%s", out)
	}

	// Strict verify turns that into a failure.
	if _, err := runCLI(t, "verify", "--strict", "--manifest", manifestPath); err == nil {
		t.Error("strict verify should fail on an invalid signature")
	}
}

func TestConfigInitWritesFile(t *testing.T) {
	out, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "miniapp.yaml") {
		t.Errorf("output should name the written file:\n%s", out)
	}
}

func TestGenerateKeepsUnrelatedManifestFields(t *testing.T) {
	scratch := t.TempDir()
	manifestPath := filepath.Join(scratch, "farcaster.json")
	seed := `{
  "miniapp": {
    "version": "1",
    "name": "Example App"
  }
}`
	if err := os.WriteFile(manifestPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed manifest: %v", err)
	}

	out, err := runCLI(t,
		"generate",
		"--fid", "12",
		"--private-key", testKeyHex,
		"--domain", "example.com",
		"--manifest", manifestPath,
	)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(data), `"name": "Example App"`) {
		t.Errorf("unrelated miniapp fields lost:\n%s", data)
	}
	if !strings.Contains(string(data), `"accountAssociation"`) {
		t.Errorf("association not written:\n%s", data)
	}
}
