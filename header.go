// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package aletheia

// Header carries the provenance metadata signed alongside the payload. The
// creator id must match the subject id of the first certificate in the
// envelope's chain. Optional fields marked omitempty are left out of the
// canonical encoding entirely when unset; emitting them empty would change
// the signed byte range. The field set and the codec tags are part of the
// wire contract and must not change.
type Header struct {
	// ContentType is the MIME type of the payload, if known.
	ContentType string `codec:"content_type,omitempty"`

	// SignedAt is the Unix timestamp (seconds) when the payload was signed.
	SignedAt int64 `codec:"signed_at"`

	// CreatorID is the unique identifier of the signer.
	CreatorID string `codec:"creator_id"`

	// OriginalName is the original filename of the payload, if applicable.
	OriginalName string `codec:"original_name,omitempty"`

	// Description is a human-readable description of the payload.
	Description string `codec:"description,omitempty"`

	// Custom holds application-specific metadata. Values are restricted to
	// CBOR primitives (booleans, integers, floats, strings, byte strings)
	// and nested arrays/maps of those.
	Custom map[string]interface{} `codec:"custom,omitempty"`
}

// NewHeader returns a header for the given creator and signing timestamp.
// Timestamp selection is deliberately the caller's responsibility.
func NewHeader(creatorID string, signedAt int64) Header {
	return Header{
		CreatorID: creatorID,
		SignedAt:  signedAt,
	}
}
