// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Write serializes an envelope in the on-wire layout:
//
//	magic(8) ‖ major(1) ‖ minor(1) ‖ flags(2 LE)
//	  ‖ header_len(4 LE) ‖ header
//	  ‖ payload_len(8 LE) ‖ payload
//	  ‖ chain_len(4 LE) ‖ chain
//	  ‖ signature(64)
//
// Header and chain are re-encoded canonically; given equal envelopes, Write
// produces identical byte strings.
func Write(env *Envelope, w io.Writer) error {

	headerBytes, err := encodeCBOR(env.Header)
	if err != nil {
		return err
	}

	chainBytes, err := encodeCBOR(env.CertificateChain)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}

	if _, err := w.Write([]byte{env.VersionMajor, env.VersionMinor}); err != nil {
		return err
	}

	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(env.Flags))
	if _, err := w.Write(u16[:]); err != nil {
		return err
	}

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(headerBytes)))
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], uint64(len(env.Payload)))
	if _, err := w.Write(u64[:]); err != nil {
		return err
	}
	if _, err := w.Write(env.Payload); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(u32[:], uint32(len(chainBytes)))
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}
	if _, err := w.Write(chainBytes); err != nil {
		return err
	}

	_, err = w.Write(env.Signature)
	return err
}

// Read parses an envelope from the on-wire layout. It fails with
// ErrInvalidMagic on a mismatched marker, an UnsupportedVersionError when
// the major version differs from 1, and ErrUnexpectedEOF on truncation.
// Unknown flag bits are carried through untouched.
func Read(r io.Reader) (*Envelope, error) {

	magic, err := readExact(r, len(Magic))
	if err != nil {
		return nil, err
	}
	if string(magic) != Magic {
		return nil, ErrInvalidMagic
	}

	version, err := readExact(r, 2)
	if err != nil {
		return nil, err
	}
	versionMajor, versionMinor := version[0], version[1]

	if versionMajor != VersionMajor {
		return nil, &UnsupportedVersionError{
			Major: versionMajor,
			Minor: versionMinor,
		}
	}

	flagsBytes, err := readExact(r, 2)
	if err != nil {
		return nil, err
	}
	flags := Flags(binary.LittleEndian.Uint16(flagsBytes))

	headerLenBytes, err := readExact(r, 4)
	if err != nil {
		return nil, err
	}
	headerBytes, err := readExact(r, int(binary.LittleEndian.Uint32(headerLenBytes)))
	if err != nil {
		return nil, err
	}

	var header Header
	if err := decodeCBOR(headerBytes, &header); err != nil {
		return nil, err
	}

	payloadLenBytes, err := readExact(r, 8)
	if err != nil {
		return nil, err
	}
	payload, err := readExact(r, int(binary.LittleEndian.Uint64(payloadLenBytes)))
	if err != nil {
		return nil, err
	}

	chainLenBytes, err := readExact(r, 4)
	if err != nil {
		return nil, err
	}
	chainBytes, err := readExact(r, int(binary.LittleEndian.Uint32(chainLenBytes)))
	if err != nil {
		return nil, err
	}

	var chain []Certificate
	if err := decodeCBOR(chainBytes, &chain); err != nil {
		return nil, err
	}

	signature, err := readExact(r, 64)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		VersionMajor:     versionMajor,
		VersionMinor:     versionMinor,
		Flags:            flags,
		Header:           header,
		Payload:          payload,
		CertificateChain: chain,
		Signature:        signature,
	}, nil
}

// readExact reads exactly n bytes, mapping short reads to ErrUnexpectedEOF.
func readExact(r io.Reader, n int) ([]byte, error) {

	if n < 0 {
		return nil, fmt.Errorf("%w: length field overflows", ErrUnexpectedEOF)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: need %d more bytes", ErrUnexpectedEOF, n)
		}
		return nil, err
	}

	return buf, nil
}

// WriteFile writes an envelope to path. The reference extension for
// envelope files is FileExtension.
func WriteFile(env *Envelope, path string) error {

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := Write(env, w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// ReadFile reads an envelope from path.
func ReadFile(path string) (*Envelope, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return Read(bufio.NewReader(f))
}

// IsEnvelopeFile reports whether the file at path starts with the envelope
// magic. A file too short to hold the magic is simply not an envelope.
func IsEnvelopeFile(path string) (bool, error) {

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(f, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}

	return string(magic) == Magic, nil
}
