// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"testing"
)

// testTimestamp is the fixed timestamp used throughout the test suite
// (2024-01-01 00:00:00 UTC).
const testTimestamp int64 = 1704067200

// newTestIdentity creates a root authority plus a leaf issued to a fresh
// keypair for "alice@example.com".
func newTestIdentity(t *testing.T) (*CertificateAuthority, *KeyPair, []Certificate) {
	t.Helper()

	ca, err := NewRootAuthority("root@example.com", "Root CA", testTimestamp)
	if err != nil {
		t.Fatalf("creating root authority: %v", err)
	}

	keys, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generating keypair: %v", err)
	}

	cert, err := ca.IssueCertificate(
		"alice@example.com",
		"Alice",
		keys.PublicKey(),
		false,
		testTimestamp,
	)
	if err != nil {
		t.Fatalf("issuing leaf certificate: %v", err)
	}

	return ca, keys, []Certificate{*cert, ca.Certificate}
}

// newTestEnvelope signs a small text payload and returns the envelope
// together with a trust set containing the issuing root.
func newTestEnvelope(t *testing.T) (*Envelope, [][]byte) {
	t.Helper()

	ca, keys, chain := newTestIdentity(t)

	signer, err := NewSigner(keys, chain)
	if err != nil {
		t.Fatalf("creating signer: %v", err)
	}

	header := NewHeader("alice@example.com", testTimestamp)
	header.ContentType = "text/plain"
	header.Description = "Test data"

	env, err := signer.Sign([]byte("Hello, World!"), header)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	return env, [][]byte{ca.PublicKey()}
}
