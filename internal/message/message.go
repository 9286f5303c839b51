// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package message builds the two base64url segments of an account
// association and composes the exact byte string that gets signed.
package message

import (
	"github.com/uratmangun/farcaster-mini-app/internal/codec"
)

// ProofType is the fixed proof type carried in every association header.
// Custody means the signing key is the account's root custody key.
const ProofType = "custody"

// Header names the account, the proof type, and the signing public key.
// Field order here fixes the JSON key order of the encoded segment.
type Header struct {
	FID  uint64 `json:"fid"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

// Payload carries the claimed hosting domain.
type Payload struct {
	Domain string `json:"domain"`
}

// BuildHeader encodes the association header for the given account id and
// 32-byte public key. The key is rendered as 0x-prefixed lowercase hex.
// The fid must already be validated as positive; this is a caller contract,
// not re-checked here.
func BuildHeader(fid uint64, publicKey []byte) (string, error) {
	h := Header{
		FID:  fid,
		Type: ProofType,
		Key:  "0x" + codec.BytesToHex(publicKey),
	}
	return codec.EncodeBase64JSON(h)
}

// BuildPayload encodes the association payload for an already-normalized
// domain (no scheme, no trailing slash — enforced upstream).
func BuildPayload(domain string) (string, error) {
	return codec.EncodeBase64JSON(Payload{Domain: domain})
}

// Compose joins the encoded header and payload with a literal period. The
// result is the exact byte sequence that is signed; verification must
// rebuild it from the stored segments, never by re-encoding decoded JSON.
func Compose(headerB64, payloadB64 string) string {
	return headerB64 + "." + payloadB64
}
