// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

// Package bundle implements the trust bundle format published by the
// administrative service: a versioned list of {name, fingerprint} entries
// for approved roots and intermediates, carried with a detached Ed25519
// signature over the canonical bundle payload. Operators use a verified
// bundle to assemble the trusted root key set handed to envelope
// verification; the bundle itself is never embedded in envelopes.
package bundle

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"

	aletheia "github.com/aurel3d/aletheia-go"
)

var (
	// ErrInvalidBundle indicates a malformed bundle record.
	ErrInvalidBundle = errors.New("invalid trust bundle")

	// ErrBundleSignature indicates that the detached bundle signature does
	// not verify under the expected signer key.
	ErrBundleSignature = errors.New("trust bundle signature verification failed")
)

// ch mirrors the envelope codec configuration so bundle payload bytes are
// deterministic in the same way signed record bytes are.
var ch = &codec.CborHandle{}

func init() {
	ch.EncodeOptions.Canonical = true
}

// Entry names a single certificate by its fingerprint.
type Entry struct {
	Name        string `codec:"name"`
	Fingerprint string `codec:"fingerprint"`
}

// Bundle is the published trust bundle payload. The field set and codec
// tags are part of the payload contract and must not change.
type Bundle struct {
	// Version identifies the bundle release; the administrative service
	// uses millisecond publication timestamps.
	Version string `codec:"version"`

	// IssuedAt is the Unix timestamp (seconds) of publication.
	IssuedAt int64 `codec:"issued_at"`

	// Roots lists approved root certificates.
	Roots []Entry `codec:"roots"`

	// Intermediates lists approved intermediate certificates, if any.
	Intermediates []Entry `codec:"intermediates,omitempty"`
}

// New returns an empty bundle for the given release version and
// publication timestamp.
func New(version string, issuedAt int64) *Bundle {
	return &Bundle{
		Version:  version,
		IssuedAt: issuedAt,
	}
}

// Fingerprint returns the lowercase hex SHA-256 of the certificate's
// canonical encoding (including its signature).
func Fingerprint(cert *aletheia.Certificate) (string, error) {

	data, err := cert.MarshalBinary()
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// AddRoot records an approved root certificate under the given name.
func (b *Bundle) AddRoot(name string, cert *aletheia.Certificate) error {

	fp, err := Fingerprint(cert)
	if err != nil {
		return err
	}

	b.Roots = append(b.Roots, Entry{Name: name, Fingerprint: fp})
	return nil
}

// AddIntermediate records an approved intermediate certificate under the
// given name.
func (b *Bundle) AddIntermediate(name string, cert *aletheia.Certificate) error {

	fp, err := Fingerprint(cert)
	if err != nil {
		return err
	}

	b.Intermediates = append(b.Intermediates, Entry{Name: name, Fingerprint: fp})
	return nil
}

// Payload returns the canonical encoding of the bundle. This is the byte
// range the detached signature covers.
func (b *Bundle) Payload() ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, ch).Encode(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	return buf, nil
}

// Sign returns a detached 64-byte signature over the bundle payload.
func (b *Bundle) Sign(keys *aletheia.KeyPair) ([]byte, error) {

	payload, err := b.Payload()
	if err != nil {
		return nil, err
	}

	return keys.Sign(payload), nil
}

// Verify checks a detached signature over the bundle payload under the
// publisher's public key.
func (b *Bundle) Verify(signerPublicKey, signature []byte) error {

	if len(signerPublicKey) != ed25519.PublicKeySize {
		return fmt.Errorf(
			"%w: invalid signer public key length %d",
			ErrInvalidBundle,
			len(signerPublicKey),
		)
	}

	payload, err := b.Payload()
	if err != nil {
		return err
	}

	if len(signature) != ed25519.SignatureSize ||
		!ed25519.Verify(ed25519.PublicKey(signerPublicKey), payload, signature) {
		return ErrBundleSignature
	}

	return nil
}

// TrustedKeys filters rootCerts down to those approved by the bundle and
// returns their public keys in the flat trust set form expected by envelope
// verification. Certificates whose fingerprint is absent from the bundle
// are silently skipped; callers decide whether an empty result is an error.
func (b *Bundle) TrustedKeys(rootCerts []*aletheia.Certificate) ([][]byte, error) {

	approved := make(map[string]struct{}, len(b.Roots))
	for _, entry := range b.Roots {
		approved[entry.Fingerprint] = struct{}{}
	}

	var keys [][]byte
	for _, cert := range rootCerts {
		fp, err := Fingerprint(cert)
		if err != nil {
			return nil, err
		}
		if _, ok := approved[fp]; ok {
			keys = append(keys, append([]byte(nil), cert.PublicKey...))
		}
	}

	return keys, nil
}

// signedBundle is the file exchange wrapper: bundle payload plus its
// detached signature.
type signedBundle struct {
	Bundle    Bundle `codec:"bundle"`
	Signature []byte `codec:"signature"`
}

// Encode renders the bundle and its detached signature in the file exchange
// format: standard base64 of the canonical CBOR wrapper record.
func Encode(b *Bundle, signature []byte) (string, error) {

	var buf []byte
	err := codec.NewEncoderBytes(&buf, ch).Encode(signedBundle{
		Bundle:    *b,
		Signature: signature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decode parses the file exchange format, returning the bundle and its
// detached signature. The signature is not checked here; call Verify.
func Decode(encoded string) (*Bundle, []byte, error) {

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not base64: %v", ErrInvalidBundle, err)
	}

	var sb signedBundle
	if err := codec.NewDecoderBytes(data, ch).Decode(&sb); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}

	return &sb.Bundle, sb.Signature, nil
}
