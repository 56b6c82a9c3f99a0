// Copyright 2025 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// cobra has already written a readable error line to stderr.
		os.Exit(1)
	}
}
