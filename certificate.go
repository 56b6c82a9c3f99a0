// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SerialSize is the length in bytes of a certificate serial number.
const SerialSize = 16

// Certificate binds a subject identity to an Ed25519 public key, signed by
// an issuing authority. Certificates are immutable after issuance. For a
// root certificate the issuer id equals the subject id and IsCA is true.
// The field set and the codec tags are part of the wire contract and must
// not change.
type Certificate struct {
	// Version is the certificate format version. Always written as 1; the
	// value is recorded but deliberately not enforced by any verifier.
	Version uint8 `codec:"version"`

	// Serial is a unique serial number (16 cryptographically random bytes).
	Serial []byte `codec:"serial"`

	// SubjectID identifies the certificate holder (e.g. an email address).
	SubjectID string `codec:"subject_id"`

	// SubjectName is the human-readable name of the holder.
	SubjectName string `codec:"subject_name"`

	// PublicKey is the holder's Ed25519 public key (32 bytes).
	PublicKey []byte `codec:"public_key"`

	// IssuerID identifies the issuing authority.
	IssuerID string `codec:"issuer_id"`

	// IssuedAt is the Unix timestamp (seconds) of issuance. Informational
	// only; chain verification performs no temporal checks.
	IssuedAt int64 `codec:"issued_at"`

	// IsCA reports whether this certificate may issue other certificates.
	IsCA bool `codec:"is_ca"`

	// Signature is the issuer's Ed25519 signature (64 bytes) over the
	// canonical encoding of the remaining fields.
	Signature []byte `codec:"signature"`
}

// unsignedCertificate is the signable projection of a Certificate: every
// field except the signature, under the same codec tags.
type unsignedCertificate struct {
	Version     uint8  `codec:"version"`
	Serial      []byte `codec:"serial"`
	SubjectID   string `codec:"subject_id"`
	SubjectName string `codec:"subject_name"`
	PublicKey   []byte `codec:"public_key"`
	IssuerID    string `codec:"issuer_id"`
	IssuedAt    int64  `codec:"issued_at"`
	IsCA        bool   `codec:"is_ca"`
}

// SignableData returns the canonical encoding of the certificate without its
// signature. This is the byte range the issuer signs.
func (c *Certificate) SignableData() ([]byte, error) {
	return encodeCBOR(unsignedCertificate{
		Version:     c.Version,
		Serial:      c.Serial,
		SubjectID:   c.SubjectID,
		SubjectName: c.SubjectName,
		PublicKey:   c.PublicKey,
		IssuerID:    c.IssuerID,
		IssuedAt:    c.IssuedAt,
		IsCA:        c.IsCA,
	})
}

// VerifySignature checks the certificate's signature over its signable data
// under the given issuer public key.
func (c *Certificate) VerifySignature(issuerPublicKey []byte) error {

	if len(issuerPublicKey) != ed25519.PublicKeySize {
		return fmt.Errorf(
			"%w: invalid issuer public key length %d",
			ErrInvalidCertificate,
			len(issuerPublicKey),
		)
	}

	if len(c.Signature) != ed25519.SignatureSize {
		return fmt.Errorf(
			"%w: invalid signature length %d",
			ErrInvalidCertificate,
			len(c.Signature),
		)
	}

	signable, err := c.SignableData()
	if err != nil {
		return err
	}

	if !ed25519.Verify(ed25519.PublicKey(issuerPublicKey), signable, c.Signature) {
		return fmt.Errorf("%w: signature verification failed", ErrInvalidCertificate)
	}

	return nil
}

// certificateRecord has the fields and codec tags of Certificate but none of
// its methods, so the codec encodes it field by field instead of calling
// MarshalBinary again.
type certificateRecord Certificate

// MarshalBinary returns the canonical encoding of the full certificate,
// including its signature. This is the record exchanged between tools (see
// EncodeCertificate) and the input to fingerprint computation.
func (c *Certificate) MarshalBinary() ([]byte, error) {
	return encodeCBOR((*certificateRecord)(c))
}

// UnmarshalBinary decodes a canonical certificate record.
func (c *Certificate) UnmarshalBinary(data []byte) error {
	return decodeCBOR(data, (*certificateRecord)(c))
}

// GenerateSerial returns a fresh certificate serial number drawn from the
// process cryptographic RNG. Uniqueness is probabilistic.
func GenerateSerial() ([]byte, error) {
	serial := make([]byte, SerialSize)
	if _, err := rand.Read(serial); err != nil {
		return nil, fmt.Errorf("%w: reading random serial: %v", ErrKeyGeneration, err)
	}
	return serial, nil
}

// EncodeCertificate renders a certificate in the file exchange format used
// by the CLI and the administrative service: standard base64 of the
// canonical CBOR record.
func EncodeCertificate(cert *Certificate) (string, error) {
	data, err := cert.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeCertificate parses a certificate from the file exchange format.
func DecodeCertificate(encoded string) (*Certificate, error) {

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64: %v", ErrInvalidCertificate, err)
	}

	var cert Certificate
	if err := cert.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	return &cert, nil
}
