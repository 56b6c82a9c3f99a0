// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"crypto/ed25519"
	"fmt"
)

// VerificationResult reports a successful verification. It is only produced
// once both the certificate chain and the envelope signature have verified;
// there is no partial success.
type VerificationResult struct {
	// Valid is always true on a returned result.
	Valid bool

	// CreatorID is the subject id of the leaf certificate.
	CreatorID string

	// CreatorName is the subject name of the leaf certificate.
	CreatorName string

	// SignedAt is the signing timestamp from the header.
	SignedAt int64

	// Description is the header description, empty when absent.
	Description string
}

// Verify validates an envelope against a set of trusted root public keys.
// The certificate chain is verified first; then the header and chain are
// re-encoded canonically, the signature input is rebuilt from the envelope's
// exact payload bytes, version and flag bits, and the signature is checked
// under the leaf certificate's public key.
func Verify(env *Envelope, trustedRootKeys [][]byte) (*VerificationResult, error) {

	if err := VerifyChain(env.CertificateChain, trustedRootKeys); err != nil {
		return nil, err
	}

	creatorCert := &env.CertificateChain[0]

	headerBytes, err := encodeCBOR(env.Header)
	if err != nil {
		return nil, err
	}

	chainBytes, err := encodeCBOR(env.CertificateChain)
	if err != nil {
		return nil, err
	}

	input := buildSignatureInput(
		env.VersionMajor,
		env.VersionMinor,
		env.Flags,
		headerBytes,
		env.Payload,
		chainBytes,
	)

	if len(creatorCert.PublicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf(
			"%w: invalid public key length %d",
			ErrInvalidCertificate,
			len(creatorCert.PublicKey),
		)
	}

	if len(env.Signature) != ed25519.SignatureSize {
		return nil, ErrInvalidSignature
	}

	if !ed25519.Verify(ed25519.PublicKey(creatorCert.PublicKey), input, env.Signature) {
		return nil, ErrInvalidSignature
	}

	return &VerificationResult{
		Valid:       true,
		CreatorID:   creatorCert.SubjectID,
		CreatorName: creatorCert.SubjectName,
		SignedAt:    env.Header.SignedAt,
		Description: env.Header.Description,
	}, nil
}

// ValidateStructure performs the non-cryptographic structural checks on an
// envelope: supported major version, non-empty chain, 64-byte signature and
// a header creator id that matches the leaf certificate. It does not touch
// any signature.
func ValidateStructure(env *Envelope) error {

	if env.VersionMajor != VersionMajor {
		return &UnsupportedVersionError{
			Major: env.VersionMajor,
			Minor: env.VersionMinor,
		}
	}

	if len(env.CertificateChain) == 0 {
		return fmt.Errorf("%w: empty certificate chain", ErrCertificateChainInvalid)
	}

	if len(env.Signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}

	creatorCert := &env.CertificateChain[0]
	if env.Header.CreatorID != creatorCert.SubjectID {
		return fmt.Errorf(
			"%w: creator id mismatch: header says %q, certificate says %q",
			ErrInvalidHeader,
			env.Header.CreatorID,
			creatorCert.SubjectID,
		)
	}

	return nil
}
