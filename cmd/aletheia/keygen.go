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

	"github.com/spf13/cobra"

	aletheia "github.com/aurel3d/aletheia-go"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new signing key pair",
	RunE:  runKeygen,
}

var (
	keygenOutput string
	keygenPrefix string
)

func init() {
	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", ".", "output directory for key files")
	keygenCmd.Flags().StringVarP(&keygenPrefix, "prefix", "p", "key", "prefix for output files")

	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {

	if err := os.MkdirAll(keygenOutput, 0o755); err != nil {
		return err
	}

	keys, err := aletheia.GenerateKeyPair()
	if err != nil {
		return err
	}

	keyPath := filepath.Join(keygenOutput, keygenPrefix+".key")
	if err := saveSecretKey(keys.PrivateKeyBytes(), keyPath); err != nil {
		return err
	}
	fmt.Printf("Private key saved to: %s\n", keyPath)

	pubPath := filepath.Join(keygenOutput, keygenPrefix+".pub")
	if err := savePublicKey(keys.PublicKey(), pubPath); err != nil {
		return err
	}
	fmt.Printf("Public key saved to: %s\n", pubPath)

	fmt.Println("\nKey pair generated successfully!")

	return nil
}
