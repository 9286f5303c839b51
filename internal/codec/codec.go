// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package codec holds the byte-level conversions the association format is
// built on: hex keys to raw bytes and canonical JSON to base64url segments.
// The byte output of these functions is load-bearing; a signed message is
// only ever reproduced by running the same conversions again.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// FormatError reports malformed hex input for a named field.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DecodeError reports a base64 segment that could not be decoded or whose
// content is not valid JSON.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %s", e.Field, e.Reason)
}

// HexToBytes parses a hex string into raw bytes. A leading "0x" or "0X" is
// accepted and stripped. The remaining string must have even length and
// contain only hex digits.
func HexToBytes(field, s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 != 0 {
		return nil, &FormatError{Field: field, Reason: "odd-length hex string"}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &FormatError{Field: field, Reason: "non-hex character"}
	}
	return b, nil
}

// BytesToHex renders bytes as lowercase hex without a prefix, two characters
// per byte.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// EncodeBase64JSON serializes v as compact UTF-8 JSON (struct field order,
// no indentation) and encodes it with the unpadded URL-safe base64 alphabet
// used by mini-app manifests.
func EncodeBase64JSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal for base64 segment: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeBase64JSON decodes a base64 segment and unmarshals the contained
// JSON into out. Decoding is lenient about the alphabet so manifests written
// by other tooling still verify: unpadded URL-safe input is the primary
// form, padded and standard-alphabet input are accepted as fallbacks.
func DecodeBase64JSON(field, s string, out any) error {
	data, err := DecodeBase64(field, s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Field: field, Reason: "invalid JSON payload"}
	}
	return nil
}

// EncodeBase64 encodes raw bytes with the unpadded URL-safe alphabet.
func EncodeBase64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64 decodes a single base64 segment with the same alphabet
// leniency as DecodeBase64JSON.
func DecodeBase64(field, s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	} {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, &DecodeError{Field: field, Reason: "malformed base64"}
}
