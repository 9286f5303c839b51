// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package signature wraps the Ed25519 primitives behind length-checked
// helpers. Everything here is purely functional; key material lives in
// caller-owned buffers.
package signature

import (
	"crypto/ed25519"
	"fmt"

	"github.com/uratmangun/farcaster-mini-app/internal/codec"
)

// SeedSize is the length of a raw custody private key.
const SeedSize = ed25519.SeedSize

// SignatureSize is the length of an Ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// SigningError reports key material of the wrong length reaching the
// signing primitive. Seeing one means an upstream validation gap.
type SigningError struct {
	Reason string
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed: %s", e.Reason)
}

// DerivePublicKey derives the 32-byte Ed25519 public key from a 32-byte
// private key seed. Deterministic, no side effects.
func DerivePublicKey(seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, &SigningError{Reason: fmt.Sprintf("private key must be %d bytes, got %d", SeedSize, len(seed))}
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[SeedSize:])
	return pub, nil
}

// Sign produces the 64-byte Ed25519 signature over the UTF-8 bytes of
// message. Ed25519 is fully deterministic: the same (message, seed) pair
// always yields the same signature.
func Sign(message string, seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, &SigningError{Reason: fmt.Sprintf("private key must be %d bytes, got %d", SeedSize, len(seed))}
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return ed25519.Sign(priv, []byte(message)), nil
}

// Verify reports whether sig is a valid Ed25519 signature of the UTF-8
// bytes of message under publicKey. A well-formed but wrong signature
// returns (false, nil); only wrong input lengths produce an error.
func Verify(sig []byte, message string, publicKey []byte) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, &codec.FormatError{Field: "public key", Reason: fmt.Sprintf("must be %d bytes, got %d", ed25519.PublicKeySize, len(publicKey))}
	}
	if len(sig) != SignatureSize {
		return false, &codec.FormatError{Field: "signature", Reason: fmt.Sprintf("must be %d bytes, got %d", SignatureSize, len(sig))}
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), []byte(message), sig), nil
}
