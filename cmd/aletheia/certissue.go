// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	aletheia "github.com/aurel3d/aletheia-go"
	"github.com/aurel3d/aletheia-go/internal/textutils"
)

var certIssueCmd = &cobra.Command{
	Use:   "cert-issue",
	Short: "Issue a certificate to a subject",
	RunE:  runCertIssue,
}

var (
	certIssueCAKey  string
	certIssueCACert string
	certIssueID     string
	certIssueName   string
	certIssueOutput string
	certIssueIsCA   bool
)

func init() {
	certIssueCmd.Flags().StringVar(&certIssueCAKey, "ca-key", "", "CA private key file")
	certIssueCmd.Flags().StringVar(&certIssueCACert, "ca-cert", "", "CA certificate file")
	certIssueCmd.Flags().StringVarP(&certIssueID, "id", "i", "", "subject identifier (e.g. email)")
	certIssueCmd.Flags().StringVarP(&certIssueName, "name", "n", "", "subject human-readable name")
	certIssueCmd.Flags().StringVarP(&certIssueOutput, "output", "o", ".", "output directory for subject files")
	certIssueCmd.Flags().BoolVar(&certIssueIsCA, "is-ca", false, "issue a CA certificate (can sign other certificates)")
	_ = certIssueCmd.MarkFlagRequired("ca-key")
	_ = certIssueCmd.MarkFlagRequired("ca-cert")
	_ = certIssueCmd.MarkFlagRequired("id")
	_ = certIssueCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(certIssueCmd)
}

func runCertIssue(cmd *cobra.Command, args []string) error {

	caKey, err := loadSecretKey(certIssueCAKey)
	if err != nil {
		return err
	}

	caCert, err := loadCertificate(certIssueCACert)
	if err != nil {
		return err
	}

	ca, err := aletheia.AuthorityFromKeyAndCert(caKey, *caCert)
	if err != nil {
		return fmt.Errorf("loading CA: %w", err)
	}

	subjectKeys, err := aletheia.GenerateKeyPair()
	if err != nil {
		return err
	}

	cert, err := ca.IssueCertificate(
		certIssueID,
		certIssueName,
		subjectKeys.PublicKey(),
		certIssueIsCA,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("issuing certificate: %w", err)
	}

	log.Debug().
		Str("subject_id", certIssueID).
		Str("issuer_id", ca.Certificate.SubjectID).
		Bool("is_ca", certIssueIsCA).
		Msg("Certificate issued")

	if err := os.MkdirAll(certIssueOutput, 0o755); err != nil {
		return err
	}

	stem := textutils.SanitizeFilename(certIssueID)

	keyPath := filepath.Join(certIssueOutput, stem+".key")
	if err := saveSecretKey(subjectKeys.PrivateKeyBytes(), keyPath); err != nil {
		return err
	}
	fmt.Printf("Private key saved to: %s\n", keyPath)

	certPath := filepath.Join(certIssueOutput, stem+".cert")
	if err := saveCertificate(cert, certPath); err != nil {
		return err
	}
	fmt.Printf("Certificate saved to: %s\n", certPath)

	fmt.Println("\nCertificate issued successfully!")
	fmt.Printf("  Subject ID:   %s\n", certIssueID)
	fmt.Printf("  Subject Name: %s\n", certIssueName)
	fmt.Printf("  Is CA:        %t\n", certIssueIsCA)
	fmt.Printf("  Issuer:       %s\n", ca.Certificate.SubjectID)

	return nil
}
