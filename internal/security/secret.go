// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security wraps custody key material so accidental formatting or
// marshaling never reveals it.
package security

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/uratmangun/farcaster-mini-app/internal/codec"
	"github.com/uratmangun/farcaster-mini-app/internal/signature"
)

// Secret holds sensitive bytes (the custody private-key seed). All
// formatting and marshaling paths are redacted; the raw bytes are only
// reachable through Bytes and Use.
type Secret []byte

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return "[SECRET]" }

// Format implements fmt.Formatter so `%v`, `%#v` and friends are redacted too.
func (s Secret) Format(f fmt.State, c rune) {
	if _, err := io.WriteString(f, "[SECRET]"); err != nil {
		_ = err
	}
}

// MarshalJSON redacts secrets in JSON marshaling.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal("[SECRET]") }

// MarshalText redacts secrets for text encoding.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[SECRET]"), nil }

// Redacted returns a short placeholder for log lines.
func (s Secret) Redacted() string { return "[SECRET]" }

// Bytes returns a copy of the underlying bytes. Callers are responsible
// for zeroing sensitive copies when done.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Use executes fn with the underlying bytes (not a copy). Callers must not
// retain the slice beyond fn.
func (s Secret) Use(fn func([]byte) error) error {
	return fn([]byte(s))
}

// Zero overwrites the underlying bytes with zeros.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}

// Len reports the secret's length without exposing content.
func (s Secret) Len() int { return len(s) }

// SeedFromHex parses a 64-hex-character private-key seed (optional 0x
// prefix) into a Secret, enforcing the 32-byte length.
func SeedFromHex(field, hexSeed string) (Secret, error) {
	b, err := codec.HexToBytes(field, hexSeed)
	if err != nil {
		return nil, err
	}
	if len(b) != signature.SeedSize {
		// Zero the rejected material before dropping it.
		for i := range b {
			b[i] = 0
		}
		return nil, &codec.FormatError{
			Field:  field,
			Reason: fmt.Sprintf("must be %d hex characters (%d bytes)", signature.SeedSize*2, signature.SeedSize),
		}
	}
	return Secret(b), nil
}
