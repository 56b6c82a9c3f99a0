// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Signer produces signed envelopes for a keypair and its certificate chain.
// The chain is ordered leaf first, root last; the leaf certificate must
// carry the keypair's public key. A Signer is immutable after construction
// and safe for concurrent use.
type Signer struct {
	keys     *KeyPair
	chain    []Certificate
	compress bool
}

// SignerOption adjusts Signer construction.
type SignerOption func(*Signer)

// WithCompression makes the signer LZ4-compress payloads and set the
// compressed flag on produced envelopes.
func WithCompression() SignerOption {
	return func(s *Signer) {
		s.compress = true
	}
}

// NewSigner validates that the chain is non-empty and that the keypair
// matches the leaf certificate, then returns a signer for them.
func NewSigner(keys *KeyPair, chain []Certificate, opts ...SignerOption) (*Signer, error) {

	if len(chain) == 0 {
		return nil, fmt.Errorf(
			"%w: certificate chain cannot be empty",
			ErrCertificateChainInvalid,
		)
	}

	if !bytes.Equal(keys.PublicKey(), chain[0].PublicKey) {
		return nil, fmt.Errorf(
			"%w: signing key does not match creator certificate",
			ErrInvalidCertificate,
		)
	}

	s := &Signer{
		keys:  keys,
		chain: append([]Certificate(nil), chain...),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CreatorID returns the subject id of the leaf certificate.
func (s *Signer) CreatorID() string {
	return s.chain[0].SubjectID
}

// Sign wraps payload and header into a signed envelope. The payload is
// compressed first when compression is enabled, the header and chain are
// canonically encoded, and the signature covers the framed concatenation of
// all of them.
func (s *Signer) Sign(payload []byte, header Header) (*Envelope, error) {

	flags := Flags(0)
	payloadBytes := append([]byte(nil), payload...)

	if s.compress {
		compressed, err := compressPayload(payload)
		if err != nil {
			return nil, err
		}
		flags |= FlagCompressed
		payloadBytes = compressed
	}

	headerBytes, err := encodeCBOR(header)
	if err != nil {
		return nil, err
	}

	chainBytes, err := encodeCBOR(s.chain)
	if err != nil {
		return nil, err
	}

	input := buildSignatureInput(
		VersionMajor,
		VersionMinor,
		flags,
		headerBytes,
		payloadBytes,
		chainBytes,
	)

	return &Envelope{
		VersionMajor:     VersionMajor,
		VersionMinor:     VersionMinor,
		Flags:            flags,
		Header:           header,
		Payload:          payloadBytes,
		CertificateChain: append([]Certificate(nil), s.chain...),
		Signature:        s.keys.Sign(input),
	}, nil
}

// buildSignatureInput assembles the only byte range the envelope signature
// covers:
//
//	magic ‖ major ‖ minor ‖ flags(2 LE)
//	  ‖ header_len(4 LE) ‖ header
//	  ‖ payload_len(8 LE) ‖ payload
//	  ‖ chain_len(4 LE) ‖ chain
//
// The payload bytes are the stored (post-compression) bytes. Both the signer
// and the verifier compute this; the signature itself is never part of it.
func buildSignatureInput(major, minor uint8, flags Flags, headerBytes, payload, chainBytes []byte) []byte {

	input := make([]byte, 0, len(Magic)+2+2+4+len(headerBytes)+8+len(payload)+4+len(chainBytes))

	input = append(input, Magic...)
	input = append(input, major, minor)
	input = binary.LittleEndian.AppendUint16(input, uint16(flags))

	input = binary.LittleEndian.AppendUint32(input, uint32(len(headerBytes)))
	input = append(input, headerBytes...)

	input = binary.LittleEndian.AppendUint64(input, uint64(len(payload)))
	input = append(input, payload...)

	input = binary.LittleEndian.AppendUint32(input, uint32(len(chainBytes)))
	input = append(input, chainBytes...)

	return input
}
