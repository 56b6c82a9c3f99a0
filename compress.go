// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Compressed payloads are LZ4 block data with the decompressed length
// prepended as a little-endian u32. Compression happens before the signature
// input is built: verifiers check the stored bytes and never decompress
// first.

// compressPayload compresses data into the size-prepended block framing.
func compressPayload(data []byte) ([]byte, error) {

	if uint64(len(data)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("%w: payload exceeds 4 GiB framing limit", ErrCompression)
	}

	buf := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(data)))

	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(data, buf[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if n == 0 {
		// Incompressible input. Emit a literals-only block so the framing
		// stays uniformly decodable.
		return append(buf[:4], literalBlock(data)...), nil
	}

	return buf[:4+n], nil
}

// literalBlock encodes src as a single LZ4 sequence of literals with no
// match, which the block format permits only as the final sequence.
func literalBlock(src []byte) []byte {

	block := make([]byte, 0, len(src)+len(src)/255+2)

	if len(src) < 15 {
		block = append(block, byte(len(src))<<4)
	} else {
		block = append(block, 0xF0)
		remaining := len(src) - 15
		for remaining >= 255 {
			block = append(block, 0xFF)
			remaining -= 255
		}
		block = append(block, byte(remaining))
	}

	return append(block, src...)
}

// decompressPayload expands a size-prepended LZ4 block.
func decompressPayload(data []byte) ([]byte, error) {

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated size prefix", ErrDecompression)
	}

	size := binary.LittleEndian.Uint32(data[:4])
	if size == 0 {
		return []byte{}, nil
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	if n != int(size) {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrDecompression,
			size,
			n,
		)
	}

	return out, nil
}
