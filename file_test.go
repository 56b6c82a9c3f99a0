// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {

	env, trusted := newTestEnvelope(t)

	var buf bytes.Buffer
	if err := Write(env, &buf); err != nil {
		t.Fatalf("writing envelope: %v", err)
	}

	loaded, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reading envelope: %v", err)
	}

	if loaded.VersionMajor != env.VersionMajor ||
		loaded.VersionMinor != env.VersionMinor ||
		loaded.Flags != env.Flags {
		t.Error("loaded envelope framing fields differ from original")
	}
	if !reflect.DeepEqual(loaded.Header, env.Header) {
		t.Error("loaded header differs from original")
	}
	if !bytes.Equal(loaded.Payload, env.Payload) {
		t.Error("loaded payload differs from original")
	}
	if !bytes.Equal(loaded.Signature, env.Signature) {
		t.Error("loaded signature differs from original")
	}
	if len(loaded.CertificateChain) != len(env.CertificateChain) {
		t.Fatal("loaded chain length differs from original")
	}

	// The signature must survive the round trip: verification re-encodes the
	// decoded header and chain and must reproduce the signed byte range.
	if _, err := Verify(loaded, trusted); err != nil {
		t.Errorf("round-tripped envelope does not verify: %v", err)
	}
}

func TestWriteIsDeterministic(t *testing.T) {

	env, _ := newTestEnvelope(t)

	var first, second bytes.Buffer
	if err := Write(env, &first); err != nil {
		t.Fatalf("writing envelope: %v", err)
	}
	if err := Write(env, &second); err != nil {
		t.Fatalf("re-writing envelope: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two writes of the same envelope produced different bytes")
	}

	// Writing a decoded envelope must also reproduce the original bytes.
	loaded, err := Read(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("reading envelope: %v", err)
	}
	var rewritten bytes.Buffer
	if err := Write(loaded, &rewritten); err != nil {
		t.Fatalf("writing decoded envelope: %v", err)
	}
	if !bytes.Equal(first.Bytes(), rewritten.Bytes()) {
		t.Error("write of decoded envelope differs from original bytes")
	}
}

func TestReadInvalidMagic(t *testing.T) {

	if _, err := Read(bytes.NewReader([]byte("NOTVALID12345678"))); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("got error %v, want %v", err, ErrInvalidMagic)
	}
}

func TestReadUnsupportedVersion(t *testing.T) {

	env, _ := newTestEnvelope(t)

	var buf bytes.Buffer
	if err := Write(env, &buf); err != nil {
		t.Fatalf("writing envelope: %v", err)
	}

	data := buf.Bytes()
	data[8] = 2 // version_major

	_, err := Read(bytes.NewReader(data))

	var versionErr *UnsupportedVersionError
	if !errors.As(err, &versionErr) {
		t.Fatalf("got error %v, want UnsupportedVersionError", err)
	}
	if versionErr.Major != 2 {
		t.Errorf("reported major version %d, want 2", versionErr.Major)
	}
}

func TestReadTruncatedInput(t *testing.T) {

	env, _ := newTestEnvelope(t)

	var buf bytes.Buffer
	if err := Write(env, &buf); err != nil {
		t.Fatalf("writing envelope: %v", err)
	}
	data := buf.Bytes()

	// Cut the stream at several interesting boundaries: inside the magic,
	// inside the fixed framing fields, midway through the stream (inside the
	// certificate chain for this envelope) and inside the trailing signature.
	cuts := []int{0, 4, 9, 11, 13, len(data) / 2, len(data) - 32, len(data) - 1}

	for _, cut := range cuts {
		if _, err := Read(bytes.NewReader(data[:cut])); !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("cut at %d: got error %v, want %v", cut, err, ErrUnexpectedEOF)
		}
	}
}

func TestReadToleratesUnknownMinorVersion(t *testing.T) {

	env, _ := newTestEnvelope(t)

	var buf bytes.Buffer
	if err := Write(env, &buf); err != nil {
		t.Fatalf("writing envelope: %v", err)
	}

	data := buf.Bytes()
	data[9] = 7 // version_minor

	loaded, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reading envelope with minor version 7: %v", err)
	}
	if loaded.VersionMinor != 7 {
		t.Errorf("minor version %d, want 7 recorded verbatim", loaded.VersionMinor)
	}
}

func TestFileRoundTrip(t *testing.T) {

	env, _ := newTestEnvelope(t)
	path := filepath.Join(t.TempDir(), "test"+FileExtension)

	if err := WriteFile(env, path); err != nil {
		t.Fatalf("writing envelope file: %v", err)
	}

	isEnvelope, err := IsEnvelopeFile(path)
	if err != nil {
		t.Fatalf("probing envelope file: %v", err)
	}
	if !isEnvelope {
		t.Error("written file not recognized as an envelope")
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("reading envelope file: %v", err)
	}
	if !bytes.Equal(loaded.Payload, env.Payload) {
		t.Error("loaded payload differs from original")
	}
}

func TestIsEnvelopeFileRejectsOtherFiles(t *testing.T) {

	dir := t.TempDir()

	tests := []struct {
		name    string
		content []byte
	}{
		{name: "Empty", content: nil},
		{name: "Short", content: []byte("ALX")},
		{name: "WrongMagic", content: []byte("NOTVALID12345678")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.content, 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			isEnvelope, err := IsEnvelopeFile(path)
			if err != nil {
				t.Fatalf("probing file: %v", err)
			}
			if isEnvelope {
				t.Error("non-envelope file recognized as an envelope")
			}
		})
	}
}
