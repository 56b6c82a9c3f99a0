// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aurel3d/aletheia-go/internal/logging"
)

// Overridden at build time with -ldflags "-X main.version=...". Setting
// placeholder value here so that something resembling a version string will
// be provided for builds that do not set it.
var version string = "x.y.z"

// log is the shared CLI logger, configured in the persistent pre-run.
var log zerolog.Logger

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "aletheia",
	Short: "Sign and verify .alx envelopes backed by a certificate chain",
	Long: "aletheia creates and validates signed envelope (.alx) files:\n" +
		"payloads wrapped with provenance metadata, a certificate chain and an\n" +
		"authority-rooted Ed25519 signature.",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.SetLoggingLevel(logLevel); err != nil {
			return err
		}
		log = logging.NewConsoleLogger(os.Stderr, "aletheia", version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		logging.LogLevelWarn,
		"logging level: disabled, error, warn, info, debug or trace",
	)
}
