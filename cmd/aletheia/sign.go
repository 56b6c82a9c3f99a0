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

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a file into a .alx envelope",
	RunE:  runSign,
}

var (
	signInput       string
	signOutput      string
	signKey         string
	signCert        string
	signCACert      string
	signContentType string
	signDescription string
	signCompress    bool
)

func init() {
	signCmd.Flags().StringVarP(&signInput, "input", "i", "", "file to sign")
	signCmd.Flags().StringVarP(&signOutput, "output", "o", "", "output .alx file (defaults to input + .alx)")
	signCmd.Flags().StringVar(&signKey, "key", "", "signer's private key file")
	signCmd.Flags().StringVar(&signCert, "cert", "", "signer's certificate file")
	signCmd.Flags().StringVar(&signCACert, "ca-cert", "", "CA certificate file (root of trust)")
	signCmd.Flags().StringVar(&signContentType, "content-type", "", "content type (MIME type)")
	signCmd.Flags().StringVar(&signDescription, "description", "", "description of the content")
	signCmd.Flags().BoolVar(&signCompress, "compress", false, "enable payload compression")
	_ = signCmd.MarkFlagRequired("input")
	_ = signCmd.MarkFlagRequired("key")
	_ = signCmd.MarkFlagRequired("cert")
	_ = signCmd.MarkFlagRequired("ca-cert")

	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {

	key, err := loadSecretKey(signKey)
	if err != nil {
		return err
	}

	keys, err := aletheia.KeyPairFromBytes(key)
	if err != nil {
		return fmt.Errorf("loading signing key: %w", err)
	}

	cert, err := loadCertificate(signCert)
	if err != nil {
		return err
	}

	caCert, err := loadCertificate(signCACert)
	if err != nil {
		return err
	}

	chain := []aletheia.Certificate{*cert, *caCert}

	var opts []aletheia.SignerOption
	if signCompress {
		opts = append(opts, aletheia.WithCompression())
	}

	signer, err := aletheia.NewSigner(keys, chain, opts...)
	if err != nil {
		return fmt.Errorf("creating signer: %w", err)
	}

	payload, err := os.ReadFile(signInput)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	header := aletheia.NewHeader(cert.SubjectID, time.Now().Unix())
	header.ContentType = signContentType
	header.Description = signDescription
	header.OriginalName = filepath.Base(signInput)

	env, err := signer.Sign(payload, header)
	if err != nil {
		return fmt.Errorf("signing: %w", err)
	}

	outputPath := signOutput
	if outputPath == "" {
		outputPath = signInput + aletheia.FileExtension
	}

	if err := aletheia.WriteFile(env, outputPath); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	log.Debug().
		Str("output", outputPath).
		Int("payload_bytes", len(payload)).
		Bool("compressed", signCompress).
		Msg("Envelope written")

	fmt.Printf("Signed file created: %s\n", outputPath)
	fmt.Printf("  Creator:     %s (%s)\n", cert.SubjectName, cert.SubjectID)
	fmt.Printf("  Compressed:  %t\n", signCompress)
	fmt.Printf("  Payload:     %d bytes\n", len(payload))

	return nil
}
