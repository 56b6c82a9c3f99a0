// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

// Flags is the 16-bit little-endian bitfield stored in the envelope framing.
// Bit 0 marks a compressed payload. All other bits are reserved: writers
// leave them zero, readers carry them through untouched so that envelopes
// produced by newer minor versions still verify.
type Flags uint16

// FlagCompressed marks the payload as LZ4 compressed with a size-prepended
// block framing.
const FlagCompressed Flags = 1 << 0

// Compressed reports whether the compressed payload bit is set.
func (f Flags) Compressed() bool {
	return f&FlagCompressed != 0
}
