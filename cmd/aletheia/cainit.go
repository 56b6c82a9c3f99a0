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
)

var caInitCmd = &cobra.Command{
	Use:   "ca-init",
	Short: "Initialize a new root Certificate Authority",
	RunE:  runCAInit,
}

var (
	caInitID     string
	caInitName   string
	caInitOutput string
)

func init() {
	caInitCmd.Flags().StringVarP(&caInitID, "id", "i", "", "CA identifier (e.g. email or organization name)")
	caInitCmd.Flags().StringVarP(&caInitName, "name", "n", "", "human-readable CA name")
	caInitCmd.Flags().StringVarP(&caInitOutput, "output", "o", ".", "output directory for CA files")
	_ = caInitCmd.MarkFlagRequired("id")
	_ = caInitCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(caInitCmd)
}

func runCAInit(cmd *cobra.Command, args []string) error {

	if err := os.MkdirAll(caInitOutput, 0o755); err != nil {
		return err
	}

	ca, err := aletheia.NewRootAuthority(caInitID, caInitName, time.Now().Unix())
	if err != nil {
		return err
	}

	log.Debug().
		Str("subject_id", caInitID).
		Msg("Root authority generated")

	keyPath := filepath.Join(caInitOutput, "ca.key")
	if err := saveSecretKey(ca.PrivateKeyBytes(), keyPath); err != nil {
		return err
	}
	fmt.Printf("CA private key saved to: %s\n", keyPath)

	certPath := filepath.Join(caInitOutput, "ca.cert")
	if err := saveCertificate(&ca.Certificate, certPath); err != nil {
		return err
	}
	fmt.Printf("CA certificate saved to: %s\n", certPath)

	fmt.Println("\nCA initialized successfully!")
	fmt.Printf("  ID:   %s\n", caInitID)
	fmt.Printf("  Name: %s\n", caInitName)
	fmt.Println("\nIMPORTANT: Keep ca.key secure! Anyone with this key can issue certificates.")

	return nil
}
