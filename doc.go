// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

// Package aletheia implements the Aletheia signed envelope format (`.alx`):
// a framed binary container that binds an arbitrary payload to a named
// identity via an Ed25519 signature and a CBOR certificate chain rooted at a
// caller-trusted authority.
//
// The package provides the certificate data model and chain verification,
// certificate authorities that create self-signed roots and issue leaf or
// intermediate certificates, and the Signer/Verify pair that produces and
// validates envelopes. All structured records are encoded with a single
// deterministic CBOR configuration so that the byte ranges covered by
// signatures can be reproduced exactly at verification time.
//
// A typical flow:
//
//	ca, _ := aletheia.NewRootAuthority("root@example.com", "Example Root CA", time.Now().Unix())
//	keys, _ := aletheia.GenerateKeyPair()
//	cert, _ := ca.IssueCertificate("alice@example.com", "Alice", keys.PublicKey(), false, time.Now().Unix())
//
//	signer, _ := aletheia.NewSigner(keys, []aletheia.Certificate{*cert, ca.Certificate})
//	env, _ := signer.Sign(payload, aletheia.NewHeader("alice@example.com", time.Now().Unix()))
//
//	result, err := aletheia.Verify(env, [][]byte{ca.PublicKey()})
//
// Verification is a pure function of the envelope and the trust set; the
// package performs no network I/O, keeps no global state beyond the codec
// configuration, and is safe for concurrent use.
package aletheia
