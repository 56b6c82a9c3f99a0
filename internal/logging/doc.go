// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

// Package logging centralizes zerolog level handling and logger construction
// for the CLI applications in this repo. The library packages stay log-free.
package logging
