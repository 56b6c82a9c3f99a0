// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package bundle

import (
	"bytes"
	"errors"
	"testing"

	aletheia "github.com/aurel3d/aletheia-go"
)

const testTimestamp int64 = 1704067200

func newTestRoots(t *testing.T) (*aletheia.CertificateAuthority, *aletheia.CertificateAuthority) {
	t.Helper()

	first, err := aletheia.NewRootAuthority("root@example.com", "Example Root CA", testTimestamp)
	if err != nil {
		t.Fatalf("creating first root: %v", err)
	}

	second, err := aletheia.NewRootAuthority("backup@example.com", "Backup Root CA", testTimestamp)
	if err != nil {
		t.Fatalf("creating second root: %v", err)
	}

	return first, second
}

func TestFingerprint(t *testing.T) {

	first, second := newTestRoots(t)

	fp, err := Fingerprint(&first.Certificate)
	if err != nil {
		t.Fatalf("computing fingerprint: %v", err)
	}

	if len(fp) != 64 {
		t.Errorf("fingerprint length %d, want 64 hex characters", len(fp))
	}
	if fp != string(bytes.ToLower([]byte(fp))) {
		t.Error("fingerprint is not lowercase")
	}

	again, err := Fingerprint(&first.Certificate)
	if err != nil {
		t.Fatalf("recomputing fingerprint: %v", err)
	}
	if fp != again {
		t.Error("fingerprint is not deterministic")
	}

	other, err := Fingerprint(&second.Certificate)
	if err != nil {
		t.Fatalf("computing second fingerprint: %v", err)
	}
	if fp == other {
		t.Error("distinct certificates share a fingerprint")
	}
}

func TestBundleSignAndVerify(t *testing.T) {

	first, second := newTestRoots(t)

	publisher, err := aletheia.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generating publisher keys: %v", err)
	}

	b := New("1704067200000", testTimestamp)
	if err := b.AddRoot("Example Root CA", &first.Certificate); err != nil {
		t.Fatalf("adding root: %v", err)
	}
	if err := b.AddRoot("Backup Root CA", &second.Certificate); err != nil {
		t.Fatalf("adding root: %v", err)
	}

	sig, err := b.Sign(publisher)
	if err != nil {
		t.Fatalf("signing bundle: %v", err)
	}
	if len(sig) != 64 {
		t.Errorf("signature length %d, want 64", len(sig))
	}

	if err := b.Verify(publisher.PublicKey(), sig); err != nil {
		t.Errorf("verifying bundle: %v", err)
	}

	// Any payload mutation invalidates the detached signature.
	tampered := *b
	tampered.Version = "999"
	if err := tampered.Verify(publisher.PublicKey(), sig); !errors.Is(err, ErrBundleSignature) {
		t.Errorf("got error %v, want %v", err, ErrBundleSignature)
	}

	// So does the wrong publisher key.
	imposter, err := aletheia.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generating imposter keys: %v", err)
	}
	if err := b.Verify(imposter.PublicKey(), sig); !errors.Is(err, ErrBundleSignature) {
		t.Errorf("got error %v, want %v", err, ErrBundleSignature)
	}
}

func TestBundleEncodeDecodeRoundTrip(t *testing.T) {

	first, _ := newTestRoots(t)

	publisher, err := aletheia.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generating publisher keys: %v", err)
	}

	b := New("v1", testTimestamp)
	if err := b.AddRoot("Example Root CA", &first.Certificate); err != nil {
		t.Fatalf("adding root: %v", err)
	}

	sig, err := b.Sign(publisher)
	if err != nil {
		t.Fatalf("signing bundle: %v", err)
	}

	encoded, err := Encode(b, sig)
	if err != nil {
		t.Fatalf("encoding bundle: %v", err)
	}

	decoded, decodedSig, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decoding bundle: %v", err)
	}

	if decoded.Version != b.Version || decoded.IssuedAt != b.IssuedAt {
		t.Error("decoded bundle metadata differs from original")
	}
	if len(decoded.Roots) != 1 || decoded.Roots[0] != b.Roots[0] {
		t.Error("decoded bundle entries differ from original")
	}
	if !bytes.Equal(decodedSig, sig) {
		t.Error("decoded signature differs from original")
	}

	if err := decoded.Verify(publisher.PublicKey(), decodedSig); err != nil {
		t.Errorf("verifying decoded bundle: %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {

	tests := []struct {
		name  string
		input string
	}{
		{name: "NotBase64", input: "not/base64!!!"},
		{name: "NotCBOR", input: "bm90IGNib3IgYXQgYWxs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(tt.input); !errors.Is(err, ErrInvalidBundle) {
				t.Errorf("got error %v, want %v", err, ErrInvalidBundle)
			}
		})
	}
}

func TestTrustedKeys(t *testing.T) {

	first, second := newTestRoots(t)

	b := New("v1", testTimestamp)
	if err := b.AddRoot("Example Root CA", &first.Certificate); err != nil {
		t.Fatalf("adding root: %v", err)
	}

	keys, err := b.TrustedKeys([]*aletheia.Certificate{
		&first.Certificate,
		&second.Certificate,
	})
	if err != nil {
		t.Fatalf("assembling trust set: %v", err)
	}

	if len(keys) != 1 {
		t.Fatalf("trust set has %d keys, want 1", len(keys))
	}
	if !bytes.Equal(keys[0], first.Certificate.PublicKey) {
		t.Error("trust set does not contain the approved root key")
	}

	// The assembled set gates envelope verification as usual.
	leafKeys, err := aletheia.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generating leaf keys: %v", err)
	}
	leaf, err := first.IssueCertificate(
		"alice@example.com",
		"Alice",
		leafKeys.PublicKey(),
		false,
		testTimestamp,
	)
	if err != nil {
		t.Fatalf("issuing leaf: %v", err)
	}

	signer, err := aletheia.NewSigner(
		leafKeys,
		[]aletheia.Certificate{*leaf, first.Certificate},
	)
	if err != nil {
		t.Fatalf("creating signer: %v", err)
	}
	env, err := signer.Sign(
		[]byte("bundled trust"),
		aletheia.NewHeader("alice@example.com", testTimestamp),
	)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := aletheia.Verify(env, keys); err != nil {
		t.Errorf("verifying against bundle-derived trust set: %v", err)
	}
}
