// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package encoding

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty",
			input: []byte{},
			want:  "",
		},
		{
			name:  "challenge",
			input: []byte("challenge"),
			want:  "Y2hhbGxlbmdl",
		},
		{
			name:  "user",
			input: []byte("user"),
			want:  "dXNlcg",
		},
		{
			name:  "attestation object",
			input: []byte("attObj"),
			want:  "YXR0T2Jq",
		},
		{
			name:  "bytes mapping to url-safe alphabet",
			input: []byte{0xfb, 0xff, 0xbf},
			want:  "-_-_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
			want:  []byte{},
		},
		{
			name:  "unpadded",
			input: "dXNlcg",
			want:  []byte("user"),
		},
		{
			name:  "padded input accepted",
			input: "dXNlcg==",
			want:  []byte("user"),
		},
		{
			name:  "url-safe characters",
			input: "-_-_",
			want:  []byte{0xfb, 0xff, 0xbf},
		},
		{
			name:    "standard alphabet rejected",
			input:   "+/+/",
			wantErr: true,
		},
		{
			name:    "invalid characters",
			input:   "not!valid",
			wantErr: true,
		},
		{
			name:    "impossible length",
			input:   "abcde",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsMalformed(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestRoundTrip verifies Decode(Encode(b)) == b for every length from 0
// through 64, covering all padding remainders.
func TestRoundTrip(t *testing.T) {
	for size := 0; size <= 64; size++ {
		buf := make([]byte, size)
		_, err := rand.Read(buf)
		require.NoError(t, err)

		decoded, err := Decode(Encode(buf))
		require.NoError(t, err, "size %d", size)
		if !bytes.Equal(buf, decoded) {
			t.Fatalf("round-trip mismatch at size %d", size)
		}
	}
}
