// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	aletheia "github.com/aurel3d/aletheia-go"
	"github.com/aurel3d/aletheia-go/bundle"
	"github.com/aurel3d/aletheia-go/internal/textutils"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show information about a .alx envelope without verifying it",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {

	env, err := aletheia.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading envelope: %w", err)
	}

	fmt.Println("Aletheia File Information")
	fmt.Println("=========================")
	fmt.Printf("File:          %s\n", args[0])
	fmt.Printf("Version:       %d.%d\n", env.VersionMajor, env.VersionMinor)
	fmt.Printf("Compressed:    %t\n", env.Flags.Compressed())
	fmt.Println()
	fmt.Println("Header:")
	fmt.Printf("  Creator ID:  %s\n", env.Header.CreatorID)
	fmt.Printf("  Signed at:   %s\n", textutils.FormatTimestamp(env.Header.SignedAt))
	if env.Header.ContentType != "" {
		fmt.Printf("  Content-Type: %s\n", env.Header.ContentType)
	}
	if env.Header.OriginalName != "" {
		fmt.Printf("  Original name: %s\n", env.Header.OriginalName)
	}
	if env.Header.Description != "" {
		fmt.Printf("  Description: %s\n", env.Header.Description)
	}
	fmt.Println()
	fmt.Printf("Payload:       %d bytes\n", len(env.Payload))
	if env.Flags.Compressed() {
		if payload, err := env.OriginalPayload(); err == nil {
			fmt.Printf("  (decompressed: %d bytes)\n", len(payload))
		}
	}
	fmt.Println()
	fmt.Printf("Certificate Chain (%d certificates):\n", len(env.CertificateChain))
	for i := range env.CertificateChain {
		cert := &env.CertificateChain[i]

		role := "Intermediate"
		switch {
		case i == 0:
			role = "Creator"
		case cert.IsCA && cert.IssuerID == cert.SubjectID:
			role = "Root CA"
		case cert.IsCA:
			role = "CA"
		}

		fmt.Printf("  [%d] %s - %s (%s)\n", i, role, cert.SubjectName, cert.SubjectID)
		fmt.Printf("      Issued by: %s\n", cert.IssuerID)
		fmt.Printf("      Issued at: %s\n", textutils.FormatTimestamp(cert.IssuedAt))
		if fp, err := bundle.Fingerprint(cert); err == nil {
			fmt.Printf("      Fingerprint: %s\n", textutils.InsertDelimiter(fp, ":", 8))
		}
	}

	return nil
}
