// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// ch is the single CBOR handle shared by every encode and decode in this
// package. Signatures are computed over encoded bytes, so the handle
// configuration is part of the wire contract: records encode as text keyed
// maps with a canonical (sorted) key order, []byte fields as CBOR byte
// strings, and absent optional fields are omitted entirely. Canonical mode
// also fixes the key order of free-form maps (the header `custom` field),
// so a decoded record always re-encodes to the exact byte sequence that was
// signed. Certificate implements encoding.BinaryMarshaler, so inside an
// encoded chain each certificate is a CBOR byte string holding its own
// canonical map encoding.
var ch = &codec.CborHandle{}

func init() {
	ch.EncodeOptions.Canonical = true
}

// encodeCBOR encodes v with the package codec configuration.
func encodeCBOR(v interface{}) ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, ch).Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCBOREncode, err)
	}
	return buf, nil
}

// decodeCBOR decodes data into v with the package codec configuration.
func decodeCBOR(data []byte, v interface{}) error {
	if err := codec.NewDecoderBytes(data, ch).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrCBORDecode, err)
	}
	return nil
}
