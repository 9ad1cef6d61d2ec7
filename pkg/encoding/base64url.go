// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package encoding implements the base64url codec used on every binary
// field of a WebAuthn ceremony. The wire form is the URL-safe base64
// alphabet ('+' replaced by '-', '/' replaced by '_') with trailing '='
// padding stripped, as produced by browsers and the identity service.
package encoding

import (
	"encoding/base64"
	"strings"
)

// Encode converts raw bytes to unpadded URL-safe base64 text.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode converts unpadded URL-safe base64 text back to the original
// bytes. Padded input is accepted as well, so values produced by either
// encoding variant round-trip. Returns an error wrapping
// ErrMalformedEncoding when the input contains characters outside the
// base64url alphabet.
func Decode(text string) ([]byte, error) {
	// Restore padding to a multiple of four before decoding.
	trimmed := strings.TrimRight(text, "=")
	if pad := len(trimmed) % 4; pad != 0 {
		trimmed += strings.Repeat("=", 4-pad)
	}

	data, err := base64.URLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, NewError("decode base64url", ErrMalformedEncoding)
	}
	return data, nil
}
