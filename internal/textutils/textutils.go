// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

// Package textutils provides small text formatting helpers shared by the
// CLI applications.
package textutils

import (
	"time"
	"unicode"
)

// SanitizeFilename replaces every character that is not a Unicode letter, a
// Unicode digit, '-' or '_' with an underscore so that subject ids (typically
// email addresses) are safe to use as file name stems.
func SanitizeFilename(s string) string {

	out := []rune(s)
	for i, r := range out {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
		default:
			out[i] = '_'
		}
	}

	return string(out)
}

// FormatTimestamp renders a Unix timestamp as a human-readable UTC string.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05 UTC")
}

// InsertDelimiter inserts a delimiter into the provided string every pos
// characters. If the length of the provided string is less than pos + 1
// characters the original string is returned unmodified. Used to group
// fingerprint hex for display.
func InsertDelimiter(s string, delimiter string, pos int) string {

	if len(s) < pos+1 {
		return s
	}

	r := []rune(s)

	var ctr int
	var delimitedStr string
	for i, v := range r {
		c := string(v)
		ctr++

		if (ctr == pos) && (i+1 != len(r)) {
			delimitedStr += c + delimiter
			ctr = 0
			continue
		}
		delimitedStr += c
	}

	return delimitedStr
}
