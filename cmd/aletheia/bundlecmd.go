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
	"strings"
	"time"

	"github.com/spf13/cobra"

	aletheia "github.com/aurel3d/aletheia-go"
	"github.com/aurel3d/aletheia-go/bundle"
	"github.com/aurel3d/aletheia-go/internal/textutils"
)

var bundleSignCmd = &cobra.Command{
	Use:   "bundle-sign",
	Short: "Assemble and sign a trust bundle from root certificates",
	RunE:  runBundleSign,
}

var bundleVerifyCmd = &cobra.Command{
	Use:   "bundle-verify <file>",
	Short: "Verify a trust bundle and list its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runBundleVerify,
}

var (
	bundleSignKey     string
	bundleSignOutput  string
	bundleSignVersion string
	bundleSignRoots   []string

	bundleVerifySignerPub string
)

func init() {
	bundleSignCmd.Flags().StringVar(&bundleSignKey, "key", "", "bundle signer's private key file")
	bundleSignCmd.Flags().StringVarP(&bundleSignOutput, "output", "o", "trust-bundle.atb", "output bundle file")
	bundleSignCmd.Flags().StringVar(&bundleSignVersion, "bundle-version", "", "bundle version (defaults to a millisecond timestamp)")
	bundleSignCmd.Flags().StringArrayVar(&bundleSignRoots, "root", nil, "approved root certificate file (repeatable)")
	_ = bundleSignCmd.MarkFlagRequired("key")
	_ = bundleSignCmd.MarkFlagRequired("root")

	bundleVerifyCmd.Flags().StringVar(&bundleVerifySignerPub, "signer-pub", "", "bundle signer's public key file (hex)")
	_ = bundleVerifyCmd.MarkFlagRequired("signer-pub")

	rootCmd.AddCommand(bundleSignCmd)
	rootCmd.AddCommand(bundleVerifyCmd)
}

func runBundleSign(cmd *cobra.Command, args []string) error {

	key, err := loadSecretKey(bundleSignKey)
	if err != nil {
		return err
	}

	keys, err := aletheia.KeyPairFromBytes(key)
	if err != nil {
		return fmt.Errorf("loading signer key: %w", err)
	}

	now := time.Now()
	bundleVersion := bundleSignVersion
	if bundleVersion == "" {
		bundleVersion = fmt.Sprintf("%d", now.UnixMilli())
	}

	b := bundle.New(bundleVersion, now.Unix())
	for _, path := range bundleSignRoots {
		cert, err := loadCertificate(path)
		if err != nil {
			return err
		}
		if err := b.AddRoot(cert.SubjectName, cert); err != nil {
			return err
		}
	}

	sig, err := b.Sign(keys)
	if err != nil {
		return err
	}

	encoded, err := bundle.Encode(b, sig)
	if err != nil {
		return err
	}

	if err := os.WriteFile(bundleSignOutput, []byte(encoded), 0o644); err != nil {
		return fmt.Errorf("writing bundle file: %w", err)
	}

	log.Debug().
		Str("version", bundleVersion).
		Int("roots", len(b.Roots)).
		Msg("Trust bundle signed")

	fmt.Printf("Trust bundle saved to: %s\n", bundleSignOutput)
	fmt.Printf("  Version: %s\n", bundleVersion)
	fmt.Printf("  Roots:   %d\n", len(b.Roots))

	return nil
}

func runBundleVerify(cmd *cobra.Command, args []string) error {

	signerPub, err := loadPublicKey(bundleVerifySignerPub)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading bundle file: %w", err)
	}

	b, sig, err := bundle.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}

	if err := b.Verify(signerPub, sig); err != nil {
		fmt.Println("BUNDLE VERIFICATION FAILED")
		fmt.Printf("  Error: %v\n", err)
		return fmt.Errorf("bundle verification failed: %w", err)
	}

	fmt.Println("BUNDLE VERIFIED")
	fmt.Printf("  Version:   %s\n", b.Version)
	fmt.Printf("  Issued at: %s\n", textutils.FormatTimestamp(b.IssuedAt))
	fmt.Printf("  Roots (%d):\n", len(b.Roots))
	for _, entry := range b.Roots {
		fmt.Printf("    %s  %s\n", textutils.InsertDelimiter(entry.Fingerprint, ":", 8), entry.Name)
	}
	if len(b.Intermediates) > 0 {
		fmt.Printf("  Intermediates (%d):\n", len(b.Intermediates))
		for _, entry := range b.Intermediates {
			fmt.Printf("    %s  %s\n", textutils.InsertDelimiter(entry.Fingerprint, ":", 8), entry.Name)
		}
	}

	return nil
}
