// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

const (
	// Magic identifies the envelope file format. The first 8 bytes of every
	// envelope are exactly these.
	Magic = "ALETHEIA"

	// VersionMajor is the envelope format major version written by this
	// package. Readers refuse any other major version.
	VersionMajor uint8 = 1

	// VersionMinor is the envelope format minor version written by this
	// package. Readers tolerate any minor version.
	VersionMinor uint8 = 0

	// FileExtension is the reference file extension for envelope files.
	FileExtension = ".alx"
)

// Envelope is the in-memory representation of a signed `.alx` file: a
// payload wrapped with a header, a certificate chain ordered leaf first and
// root last, and an authority-rooted signature over the framed contents.
// Envelopes are produced by a Signer and never mutated; verification rejects
// any modification.
type Envelope struct {
	VersionMajor uint8
	VersionMinor uint8
	Flags        Flags
	Header       Header

	// Payload holds the stored payload bytes, still compressed when the
	// compressed flag is set. These exact bytes are covered by the
	// signature; use OriginalPayload to recover the caller's data.
	Payload []byte

	// CertificateChain is ordered leaf first, root last. Never empty.
	CertificateChain []Certificate

	// Signature is the 64-byte Ed25519 signature over the signature input.
	Signature []byte
}

// OriginalPayload returns the payload as supplied to the signer,
// decompressing the stored bytes when the compressed flag is set.
func (e *Envelope) OriginalPayload() ([]byte, error) {
	if e.Flags.Compressed() {
		return decompressPayload(e.Payload)
	}
	return append([]byte(nil), e.Payload...), nil
}
