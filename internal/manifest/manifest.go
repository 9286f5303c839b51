// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package manifest reads and writes the .well-known/farcaster.json
// document. Only the accountAssociation entry is ever touched; every other
// top-level field passes through byte-for-byte, in its original order.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uratmangun/farcaster-mini-app/internal/association"
	"github.com/uratmangun/farcaster-mini-app/internal/logging"
)

// DefaultPath is where hosted mini-apps serve their manifest from.
const DefaultPath = ".well-known/farcaster.json"

// AssociationKey is the top-level manifest key this tool owns.
const AssociationKey = "accountAssociation"

// IOError reports a failed manifest write. Reads never produce one; an
// unreadable manifest falls back to the skeleton.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("manifest %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Manifest is the parsed document. Top-level keys are kept as raw JSON in
// their original order so unrelated app metadata survives a rewrite
// untouched.
type Manifest struct {
	order  []string
	fields map[string]json.RawMessage
}

// Skeleton returns the default manifest written when no usable document
// exists yet: an empty association slot plus an empty miniapp object.
func Skeleton() *Manifest {
	return &Manifest{
		order: []string{AssociationKey, "miniapp"},
		fields: map[string]json.RawMessage{
			AssociationKey: json.RawMessage("{}"),
			"miniapp":      json.RawMessage("{}"),
		},
	}
}

// Load reads and parses the manifest at path. An absent or unparseable
// file is a bootstrap case, not an error: the caller gets the skeleton and
// a warning is logged for the corrupt variant.
func Load(path string) *Manifest {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warnf("cannot read manifest %s (%v), starting from skeleton", path, err)
		}
		return Skeleton()
	}
	m, err := Parse(data)
	if err != nil {
		logging.Warnf("manifest %s is not valid JSON (%v), starting from skeleton", path, err)
		return Skeleton()
	}
	return m
}

// Parse decodes a manifest document, recording top-level key order.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top-level value is not an object")
	}

	m := &Manifest{fields: make(map[string]json.RawMessage)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v where a key was expected", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if _, seen := m.fields[key]; !seen {
			m.order = append(m.order, key)
		}
		m.fields[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

// Association extracts the stored account association. The second return
// is false when the slot is absent or empty.
func (m *Manifest) Association() (association.AccountAssociation, bool) {
	raw, ok := m.fields[AssociationKey]
	if !ok {
		return association.AccountAssociation{}, false
	}
	var a association.AccountAssociation
	if err := json.Unmarshal(raw, &a); err != nil {
		logging.Warnf("stored %s is malformed: %v", AssociationKey, err)
		return association.AccountAssociation{}, false
	}
	if a.IsZero() {
		return association.AccountAssociation{}, false
	}
	return a, true
}

// SetAssociation replaces the association wholesale. Every other field is
// left exactly as loaded. A manifest that never had the key gets it
// prepended, matching the usual hand-written layout.
func (m *Manifest) SetAssociation(a association.AccountAssociation) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", AssociationKey, err)
	}
	if _, ok := m.fields[AssociationKey]; !ok {
		m.order = append([]string{AssociationKey}, m.order...)
	}
	m.fields[AssociationKey] = json.RawMessage(raw)
	return nil
}

// Keys returns the top-level keys in document order.
func (m *Manifest) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// MarshalJSON emits the document with its recorded key order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(m.fields[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Save writes the manifest with stable 2-space indentation, creating the
// parent directory (.well-known, typically) when missing. Whole-file
// overwrite; this is operator tooling, not a live service.
func (m *Manifest) Save(path string) error {
	raw, err := m.MarshalJSON()
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	out.WriteByte('\n')

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "mkdir", Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
