// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"bytes"
	"testing"
)

func TestEncodeCBORDeterminism(t *testing.T) {

	header := NewHeader("alice@example.com", testTimestamp)
	header.ContentType = "text/plain"
	header.Custom = map[string]interface{}{
		"zeta":  "last",
		"alpha": int64(1),
		"mid":   true,
	}

	first, err := encodeCBOR(header)
	if err != nil {
		t.Fatalf("encoding header: %v", err)
	}

	for i := 0; i < 16; i++ {
		again, err := encodeCBOR(header)
		if err != nil {
			t.Fatalf("re-encoding header: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding not deterministic on attempt %d", i)
		}
	}
}

func TestEncodeCBOROmitsAbsentOptionalFields(t *testing.T) {

	minimal, err := encodeCBOR(NewHeader("alice@example.com", testTimestamp))
	if err != nil {
		t.Fatalf("encoding minimal header: %v", err)
	}

	for _, key := range []string{"content_type", "original_name", "description", "custom"} {
		if bytes.Contains(minimal, []byte(key)) {
			t.Errorf("minimal header encoding contains absent optional field %q", key)
		}
	}

	for _, key := range []string{"signed_at", "creator_id"} {
		if !bytes.Contains(minimal, []byte(key)) {
			t.Errorf("minimal header encoding missing required field %q", key)
		}
	}

	full := NewHeader("alice@example.com", testTimestamp)
	full.Description = "described"
	withDescription, err := encodeCBOR(full)
	if err != nil {
		t.Fatalf("encoding full header: %v", err)
	}
	if len(withDescription) <= len(minimal) {
		t.Error("setting an optional field did not grow the encoding")
	}
}

func TestEncodeCBORByteFieldsAreByteStrings(t *testing.T) {

	serial := bytes.Repeat([]byte{0xAB}, SerialSize)
	encoded, err := encodeCBOR(unsignedCertificate{
		Version: 1,
		Serial:  serial,
	})
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}

	// A 16-byte CBOR byte string is tagged 0x50 (major type 2, length 16).
	// Encoding the serial as an array of integers would not produce this
	// marker immediately before the serial bytes.
	want := append([]byte{0x50}, serial...)
	if !bytes.Contains(encoded, want) {
		t.Error("serial was not encoded as a CBOR byte string")
	}
}

func TestDecodedHeaderReencodesIdentically(t *testing.T) {

	header := NewHeader("alice@example.com", testTimestamp)
	header.ContentType = "application/octet-stream"
	header.Description = "round trip"
	header.Custom = map[string]interface{}{
		"b": "two",
		"a": int64(1),
	}

	encoded, err := encodeCBOR(header)
	if err != nil {
		t.Fatalf("encoding header: %v", err)
	}

	var decoded Header
	if err := decodeCBOR(encoded, &decoded); err != nil {
		t.Fatalf("decoding header: %v", err)
	}

	reencoded, err := encodeCBOR(decoded)
	if err != nil {
		t.Fatalf("re-encoding header: %v", err)
	}

	if !bytes.Equal(encoded, reencoded) {
		t.Error("decode/re-encode of header changed the byte sequence")
	}
}

func TestDecodedChainReencodesIdentically(t *testing.T) {

	_, _, chain := newTestIdentity(t)

	encoded, err := encodeCBOR(chain)
	if err != nil {
		t.Fatalf("encoding chain: %v", err)
	}

	var decoded []Certificate
	if err := decodeCBOR(encoded, &decoded); err != nil {
		t.Fatalf("decoding chain: %v", err)
	}

	reencoded, err := encodeCBOR(decoded)
	if err != nil {
		t.Fatalf("re-encoding chain: %v", err)
	}

	if !bytes.Equal(encoded, reencoded) {
		t.Error("decode/re-encode of chain changed the byte sequence")
	}
}
