// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "audit.db")
	s, err := NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLogActionAndList(t *testing.T) {
	s := newTestStore(t)

	if err := s.LogAction("GENERATE_ASSOCIATION", "fid: 3621, domain: example.com"); err != nil {
		t.Fatalf("LogAction: %v", err)
	}
	if err := s.LogAction("VERIFY_ASSOCIATION", "domain: example.com, valid: true"); err != nil {
		t.Fatalf("LogAction: %v", err)
	}

	entries, err := s.GetAllAuditLogEntries()
	if err != nil {
		t.Fatalf("GetAllAuditLogEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Action != "VERIFY_ASSOCIATION" {
		t.Errorf("entries not newest-first: %+v", entries)
	}
	if entries[1].Details != "fid: 3621, domain: example.com" {
		t.Errorf("details not persisted: %+v", entries[1])
	}
	for _, e := range entries {
		if e.Username == "" {
			t.Errorf("entry missing username: %+v", e)
		}
		if e.Timestamp == "" {
			t.Errorf("entry missing timestamp: %+v", e)
		}
	}
}

func TestInitDBEmptyDSNDisablesAuditing(t *testing.T) {
	if err := InitDB("sqlite", ""); err != nil {
		t.Fatalf("InitDB with empty DSN: %v", err)
	}
	if IsInitialized() {
		t.Error("empty DSN should leave the store unset")
	}
	if DefaultStore() != nil {
		t.Error("DefaultStore should be nil when auditing is disabled")
	}
}

func TestInitDBSetsDefaultStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "audit.db")
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		if s := DefaultStore(); s != nil {
			_ = s.Close()
		}
		store = nil
	})
	if !IsInitialized() {
		t.Fatal("store should be initialized")
	}
	if err := DefaultStore().LogAction("TEST", "details"); err != nil {
		t.Errorf("LogAction through default store: %v", err)
	}
}

func TestNewStoreFromDSNUnknownTypeFails(t *testing.T) {
	if _, err := NewStoreFromDSN("oracle", "whatever"); err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
