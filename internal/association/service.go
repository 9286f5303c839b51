// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package association orchestrates the account-association pipeline:
// validate credentials, derive the custody public key, build the signed
// message, sign it, and self-verify before anything is persisted. It also
// provides the independent verifier used by `miniapp verify`.
package association

import (
	"fmt"

	"github.com/uratmangun/farcaster-mini-app/internal/codec"
	"github.com/uratmangun/farcaster-mini-app/internal/logging"
	"github.com/uratmangun/farcaster-mini-app/internal/message"
	"github.com/uratmangun/farcaster-mini-app/internal/signature"
)

// AccountAssociation is the persisted proof triple. Each field is a
// base64url string; the triple is immutable once verified and only ever
// replaced wholesale.
type AccountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

// IsZero reports whether no association is present.
func (a AccountAssociation) IsZero() bool {
	return a.Header == "" && a.Payload == "" && a.Signature == ""
}

// IntegrityError means a freshly produced signature failed its own
// verification. This must never be downgraded: persisting an unverifiable
// association is strictly worse than refusing to write the manifest.
type IntegrityError struct {
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("self-verification failed after signing: %s", e.Detail)
}

// Generate runs the full pipeline over validated credentials and returns
// the association triple. The private key is read exactly once, for the
// single signing call.
func Generate(creds Credentials) (AccountAssociation, error) {
	var assoc AccountAssociation

	err := creds.PrivateKey.Use(func(seed []byte) error {
		pub, err := signature.DerivePublicKey(seed)
		if err != nil {
			return err
		}
		logging.Debugf("derived custody public key 0x%s for fid %d", codec.BytesToHex(pub), creds.FID)

		header, err := message.BuildHeader(creds.FID, pub)
		if err != nil {
			return err
		}
		payload, err := message.BuildPayload(creds.Domain)
		if err != nil {
			return err
		}
		msg := message.Compose(header, payload)

		sig, err := signature.Sign(msg, seed)
		if err != nil {
			return err
		}

		// Never hand out a triple that does not verify against its own key.
		ok, err := signature.Verify(sig, msg, pub)
		if err != nil {
			return &IntegrityError{Detail: err.Error()}
		}
		if !ok {
			return &IntegrityError{Detail: "signature does not verify under the derived public key"}
		}

		assoc = AccountAssociation{
			Header:    header,
			Payload:   payload,
			Signature: codec.EncodeBase64(sig),
		}
		return nil
	})
	if err != nil {
		return AccountAssociation{}, err
	}
	return assoc, nil
}

// VerificationReport carries one flag per independently checkable property
// so a broken manifest can be diagnosed field by field. Problems collects
// the human-readable reason for every failed flag.
type VerificationReport struct {
	HeaderDecodable  bool
	PayloadDecodable bool
	FIDValid         bool
	DomainValid      bool
	SignatureValid   bool

	FID      uint64
	Domain   string
	KeyHex   string
	Problems []string
}

// ProductionReady is the logical AND of all flags.
func (r VerificationReport) ProductionReady() bool {
	return r.HeaderDecodable && r.PayloadDecodable && r.FIDValid && r.DomainValid && r.SignatureValid
}

// Verify independently checks a stored association. The signed message is
// rebuilt from the stored base64 segments verbatim; the decoded JSON is
// never re-encoded, since re-encoding is not guaranteed byte-identical.
// Each check degrades independently so the report stays useful on partial
// corruption.
func Verify(assoc AccountAssociation) VerificationReport {
	var r VerificationReport

	var hdr message.Header
	if err := codec.DecodeBase64JSON("header", assoc.Header, &hdr); err != nil {
		r.Problems = append(r.Problems, err.Error())
	} else if hdr.Type != message.ProofType {
		r.Problems = append(r.Problems, fmt.Sprintf("header type is %q, want %q", hdr.Type, message.ProofType))
	} else {
		r.HeaderDecodable = true
		r.FID = hdr.FID
		r.KeyHex = hdr.Key
	}

	var pl message.Payload
	if err := codec.DecodeBase64JSON("payload", assoc.Payload, &pl); err != nil {
		r.Problems = append(r.Problems, err.Error())
	} else {
		r.PayloadDecodable = true
		r.Domain = pl.Domain
	}

	if r.HeaderDecodable && hdr.FID > 0 {
		r.FIDValid = true
	} else if r.HeaderDecodable {
		r.Problems = append(r.Problems, "fid must be a positive integer")
	}

	if r.PayloadDecodable {
		if err := ValidateDomain(pl.Domain); err != nil {
			r.Problems = append(r.Problems, err.Error())
		} else {
			r.DomainValid = true
		}
	}

	r.SignatureValid = verifySignature(&r, assoc)
	return r
}

// verifySignature checks the stored signature against the recomposed
// message under the header's public key. Any missing prerequisite turns
// into a recorded problem instead of an error.
func verifySignature(r *VerificationReport, assoc AccountAssociation) bool {
	if !r.HeaderDecodable {
		r.Problems = append(r.Problems, "signature not checked: header unreadable")
		return false
	}

	pub, err := codec.HexToBytes("key", r.KeyHex)
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
		return false
	}
	sig, err := codec.DecodeBase64("signature", assoc.Signature)
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
		return false
	}

	msg := message.Compose(assoc.Header, assoc.Payload)
	ok, err := signature.Verify(sig, msg, pub)
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
		return false
	}
	if !ok {
		r.Problems = append(r.Problems, "signature does not verify under the header key")
	}
	return ok
}
