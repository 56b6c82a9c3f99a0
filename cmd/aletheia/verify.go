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

	"github.com/spf13/cobra"

	aletheia "github.com/aurel3d/aletheia-go"
	"github.com/aurel3d/aletheia-go/internal/textutils"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a signed .alx envelope",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

var (
	verifyTrust   []string
	verifyOutput  string
	verifyVerbose bool
)

func init() {
	verifyCmd.Flags().StringArrayVar(&verifyTrust, "trust", nil, "trusted CA certificate file (repeatable)")
	verifyCmd.Flags().StringVarP(&verifyOutput, "output", "o", "", "write the payload to a file")
	verifyCmd.Flags().BoolVarP(&verifyVerbose, "verbose", "v", false, "show detailed information")
	_ = verifyCmd.MarkFlagRequired("trust")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {

	var trustedRoots [][]byte
	for _, path := range verifyTrust {
		cert, err := loadCertificate(path)
		if err != nil {
			return fmt.Errorf("loading trusted cert %s: %w", path, err)
		}
		trustedRoots = append(trustedRoots, cert.PublicKey)
	}

	env, err := aletheia.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading envelope: %w", err)
	}

	result, err := aletheia.Verify(env, trustedRoots)
	if err != nil {
		fmt.Println("VERIFICATION FAILED")
		fmt.Printf("  Error: %v\n", err)
		return fmt.Errorf("verification failed: %w", err)
	}

	fmt.Println("VERIFIED")
	fmt.Printf("  Creator: %s (%s)\n", result.CreatorName, result.CreatorID)
	fmt.Printf("  Signed:  %s\n", textutils.FormatTimestamp(result.SignedAt))
	if result.Description != "" {
		fmt.Printf("  Description: %s\n", result.Description)
	}
	if verifyVerbose {
		fmt.Println("\n  The signature is valid and the certificate chain is trusted.")
	}

	if verifyOutput != "" {
		payload, err := env.OriginalPayload()
		if err != nil {
			return fmt.Errorf("decompressing payload: %w", err)
		}
		if err := os.WriteFile(verifyOutput, payload, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Printf("\nPayload extracted to: %s\n", verifyOutput)
	}

	return nil
}
