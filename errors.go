// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic indicates that the first 8 bytes of the input do not
	// match the expected envelope marker.
	ErrInvalidMagic = errors.New("invalid magic bytes: expected 'ALETHEIA'")

	// ErrUnexpectedEOF indicates that the input ended before the framing
	// required by the envelope layout was satisfied.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidHeader indicates a structural mismatch in the envelope
	// header, e.g. a creator id that does not match the leaf certificate.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrInvalidCertificate indicates a malformed certificate: bad key
	// length, key/certificate mismatch, malformed signature bytes or a
	// failed certificate signature check.
	ErrInvalidCertificate = errors.New("invalid certificate")

	// ErrCertificateChainInvalid indicates a chain policy violation: an
	// empty chain, a non-CA issuer, an issuer id mismatch, a root that is
	// not self-signed or a root not marked as a CA.
	ErrCertificateChainInvalid = errors.New("certificate chain verification failed")

	// ErrUntrustedRoot indicates that the chain terminates at a certificate
	// whose public key is not present in the caller-supplied trust set.
	ErrUntrustedRoot = errors.New("untrusted root certificate")

	// ErrInvalidSignature indicates that the envelope signature does not
	// verify over the signature input.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrCBOREncode indicates a canonical codec failure while encoding.
	ErrCBOREncode = errors.New("cbor encoding error")

	// ErrCBORDecode indicates a canonical codec failure while decoding.
	ErrCBORDecode = errors.New("cbor decoding error")

	// ErrCompression indicates that the payload could not be compressed.
	ErrCompression = errors.New("compression error")

	// ErrDecompression indicates that a compressed payload could not be
	// expanded.
	ErrDecompression = errors.New("decompression error")

	// ErrKeyGeneration indicates that key or serial generation failed, or
	// that key material of the wrong length was supplied.
	ErrKeyGeneration = errors.New("key generation failed")
)

// UnsupportedVersionError is returned when reading an envelope whose major
// version differs from the one supported by this package. The minor version
// is carried for diagnostics only; minor drift alone never produces this
// error.
type UnsupportedVersionError struct {
	Major uint8
	Minor uint8
}

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version: %d.%d", e.Major, e.Minor)
}
