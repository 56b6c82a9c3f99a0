// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// CertificateAuthority holds a signing key together with the certificate
// that vouches for it. A root authority carries a self-signed certificate;
// an authority loaded from storage carries whatever certificate was issued
// to its key. Authorities are immutable after construction and safe for
// concurrent use.
type CertificateAuthority struct {
	signingKey ed25519.PrivateKey

	// Certificate is the authority's own certificate.
	Certificate Certificate
}

// NewRootAuthority generates a fresh keypair and a self-signed root
// certificate for it. The issued-at timestamp is an explicit parameter;
// callers that want wall-clock time pass time.Now().Unix().
func NewRootAuthority(subjectID, subjectName string, issuedAt int64) (*CertificateAuthority, error) {

	publicKey, signingKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	serial, err := GenerateSerial()
	if err != nil {
		return nil, err
	}

	cert := Certificate{
		Version:     1,
		Serial:      serial,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		PublicKey:   publicKey,
		IssuerID:    subjectID,
		IssuedAt:    issuedAt,
		IsCA:        true,
	}

	signable, err := cert.SignableData()
	if err != nil {
		return nil, err
	}
	cert.Signature = ed25519.Sign(signingKey, signable)

	return &CertificateAuthority{
		signingKey:  signingKey,
		Certificate: cert,
	}, nil
}

// AuthorityFromKeyAndCert reloads an authority from a stored 32-byte secret
// key and its certificate. The derived public key must match the embedded
// certificate exactly; a mismatch would silently issue untrusted
// certificates, so loading fails fast instead.
func AuthorityFromKeyAndCert(secretKey []byte, cert Certificate) (*CertificateAuthority, error) {

	if len(secretKey) != ed25519.SeedSize {
		return nil, fmt.Errorf(
			"%w: invalid signing key length %d",
			ErrKeyGeneration,
			len(secretKey),
		)
	}

	signingKey := ed25519.NewKeyFromSeed(secretKey)
	publicKey := signingKey.Public().(ed25519.PublicKey)

	if !bytes.Equal(publicKey, cert.PublicKey) {
		return nil, fmt.Errorf(
			"%w: signing key does not match certificate public key",
			ErrInvalidCertificate,
		)
	}

	return &CertificateAuthority{
		signingKey:  signingKey,
		Certificate: cert,
	}, nil
}

// PublicKey returns a copy of the authority's public key.
func (ca *CertificateAuthority) PublicKey() []byte {
	publicKey := ca.signingKey.Public().(ed25519.PublicKey)
	return append([]byte(nil), publicKey...)
}

// PrivateKeyBytes returns a copy of the authority's 32-byte secret key for
// offline storage.
func (ca *CertificateAuthority) PrivateKeyBytes() []byte {
	return append([]byte(nil), ca.signingKey.Seed()...)
}

// IssueCertificate signs a certificate binding the subject identity to the
// given public key. Passing isCA true produces an intermediate-capable
// certificate; no further policy is applied here. The issued-at timestamp is
// an explicit parameter.
func (ca *CertificateAuthority) IssueCertificate(subjectID, subjectName string, subjectPublicKey []byte, isCA bool, issuedAt int64) (*Certificate, error) {

	if len(subjectPublicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf(
			"%w: invalid public key length %d",
			ErrInvalidCertificate,
			len(subjectPublicKey),
		)
	}

	serial, err := GenerateSerial()
	if err != nil {
		return nil, err
	}

	cert := Certificate{
		Version:     1,
		Serial:      serial,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		PublicKey:   append([]byte(nil), subjectPublicKey...),
		IssuerID:    ca.Certificate.SubjectID,
		IssuedAt:    issuedAt,
		IsCA:        isCA,
	}

	signable, err := cert.SignableData()
	if err != nil {
		return nil, err
	}
	cert.Signature = ed25519.Sign(ca.signingKey, signable)

	return &cert, nil
}

// KeyPair is an Ed25519 keypair used by content creators to sign envelopes.
type KeyPair struct {
	signingKey ed25519.PrivateKey
}

// GenerateKeyPair returns a fresh random keypair.
func GenerateKeyPair() (*KeyPair, error) {
	_, signingKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{signingKey: signingKey}, nil
}

// KeyPairFromBytes reloads a keypair from a stored 32-byte secret key.
func KeyPairFromBytes(secretKey []byte) (*KeyPair, error) {

	if len(secretKey) != ed25519.SeedSize {
		return nil, fmt.Errorf(
			"%w: invalid private key length %d",
			ErrKeyGeneration,
			len(secretKey),
		)
	}

	return &KeyPair{signingKey: ed25519.NewKeyFromSeed(secretKey)}, nil
}

// PublicKey returns a copy of the keypair's public key.
func (kp *KeyPair) PublicKey() []byte {
	publicKey := kp.signingKey.Public().(ed25519.PublicKey)
	return append([]byte(nil), publicKey...)
}

// PrivateKeyBytes returns a copy of the 32-byte secret key for offline
// storage.
func (kp *KeyPair) PrivateKeyBytes() []byte {
	return append([]byte(nil), kp.signingKey.Seed()...)
}

// Sign returns a 64-byte detached signature over data.
func (kp *KeyPair) Sign(data []byte) []byte {
	return ed25519.Sign(kp.signingKey, data)
}
