// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"bytes"
	"fmt"
)

// VerifyChain verifies an ordered certificate chain against a flat set of
// trusted root public keys. The chain is ordered leaf first, root last; each
// certificate is verified against the next one, and the final certificate
// must be a self-signed CA whose public key is byte-equal to a member of the
// trust set.
//
// Chain verification is deliberately limited to signature and issuer policy
// checks. Validity periods, name constraints, path lengths and revocation
// are the business of the administrative service that curates the trust set.
func VerifyChain(chain []Certificate, trustedRootKeys [][]byte) error {

	if len(chain) == 0 {
		return fmt.Errorf("%w: empty certificate chain", ErrCertificateChainInvalid)
	}

	for i := range chain {
		cert := &chain[i]

		var issuerKey []byte
		if i+1 < len(chain) {
			issuer := &chain[i+1]

			if !issuer.IsCA {
				return fmt.Errorf(
					"%w: certificate %q is not a CA but issued %q",
					ErrCertificateChainInvalid,
					issuer.SubjectID,
					cert.SubjectID,
				)
			}

			if cert.IssuerID != issuer.SubjectID {
				return fmt.Errorf(
					"%w: issuer id mismatch: certificate says %q, chain has %q",
					ErrCertificateChainInvalid,
					cert.IssuerID,
					issuer.SubjectID,
				)
			}

			issuerKey = issuer.PublicKey
		} else {
			// Root certificate.
			if cert.IssuerID != cert.SubjectID {
				return fmt.Errorf(
					"%w: root certificate is not self-signed",
					ErrCertificateChainInvalid,
				)
			}

			if !cert.IsCA {
				return fmt.Errorf(
					"%w: root certificate is not marked as CA",
					ErrCertificateChainInvalid,
				)
			}

			if !keyInSet(cert.PublicKey, trustedRootKeys) {
				return ErrUntrustedRoot
			}

			issuerKey = cert.PublicKey
		}

		if err := cert.VerifySignature(issuerKey); err != nil {
			return fmt.Errorf("%w: certificate %q: %w", ErrCertificateChainInvalid, cert.SubjectID, err)
		}
	}

	return nil
}

// keyInSet reports whether key is byte-equal to a member of the set.
func keyInSet(key []byte, set [][]byte) bool {
	for _, candidate := range set {
		if bytes.Equal(key, candidate) {
			return true
		}
	}
	return false
}
