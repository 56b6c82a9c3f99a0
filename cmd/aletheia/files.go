// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	aletheia "github.com/aurel3d/aletheia-go"
)

// Certificates travel as base64 of their canonical CBOR record; secret keys
// are stored as lowercase hex of the 32-byte seed.

func loadCertificate(path string) (*aletheia.Certificate, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading certificate file: %w", err)
	}

	cert, err := aletheia.DecodeCertificate(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing certificate %s: %w", path, err)
	}

	return cert, nil
}

func saveCertificate(cert *aletheia.Certificate, path string) error {

	encoded, err := aletheia.EncodeCertificate(cert)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(encoded), 0o644)
}

func loadSecretKey(path string) ([]byte, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing key %s: not hex: %w", path, err)
	}

	return key, nil
}

func saveSecretKey(key []byte, path string) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600)
}

func savePublicKey(key []byte, path string) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o644)
}

func loadPublicKey(path string) ([]byte, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading public key file: %w", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing public key %s: not hex: %w", path, err)
	}

	return key, nil
}
