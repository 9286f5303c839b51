// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

package association

import (
	"fmt"
	"strings"

	"github.com/uratmangun/farcaster-mini-app/internal/security"
)

// ConfigError reports missing or malformed credentials. It is fatal and
// raised before any cryptographic work happens.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Credentials is everything needed to generate an association. Built once
// by the CLI layer and passed in explicitly; core code never reads the
// environment.
type Credentials struct {
	FID        uint64
	PrivateKey security.Secret
	Domain     string
}

// NewCredentials validates the raw operator inputs and assembles
// Credentials. The private key must be 64 hex characters (optional 0x
// prefix); the domain must be bare: prefixing a scheme or a trailing slash
// is rejected rather than silently stripped, so copy-paste mistakes
// surface instead of being papered over.
func NewCredentials(fid uint64, privateKeyHex, domain string) (Credentials, error) {
	if fid == 0 {
		return Credentials{}, &ConfigError{Field: "fid", Reason: "must be a positive integer"}
	}
	if privateKeyHex == "" {
		return Credentials{}, &ConfigError{Field: "private_key", Reason: "is required"}
	}
	seed, err := security.SeedFromHex("private_key", privateKeyHex)
	if err != nil {
		return Credentials{}, &ConfigError{Field: "private_key", Reason: "must be 64 hex characters"}
	}
	if err := ValidateDomain(domain); err != nil {
		seed.Zero()
		return Credentials{}, err
	}
	return Credentials{FID: fid, PrivateKey: seed, Domain: domain}, nil
}

// ValidateDomain checks the bare-domain contract: non-empty, no URL
// scheme, no path or trailing slash, no whitespace.
func ValidateDomain(domain string) error {
	switch {
	case domain == "":
		return &ConfigError{Field: "domain", Reason: "is required"}
	case strings.Contains(domain, "://"):
		return &ConfigError{Field: "domain", Reason: "must not include a scheme (drop the http:// or https:// prefix)"}
	case strings.HasSuffix(domain, "/"):
		return &ConfigError{Field: "domain", Reason: "must not end with a slash"}
	case strings.Contains(domain, "/"):
		return &ConfigError{Field: "domain", Reason: "must not include a path"}
	case strings.ContainsAny(domain, " \t\r\n"):
		return &ConfigError{Field: "domain", Reason: "must not contain whitespace"}
	case !strings.Contains(domain, ".") && !strings.HasPrefix(domain, "localhost"):
		return &ConfigError{Field: "domain", Reason: "does not look like a hostname"}
	}
	return nil
}
