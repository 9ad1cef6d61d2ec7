// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package webauthn implements the passkey ceremony adapter. It fetches
// challenge options from the identity server, drives a platform
// authenticator through the registration or authentication ceremony,
// and submits the serialized result back to the server.
//
// Binary fields cross the wire as unpadded base64url strings and are
// handed to the authenticator as raw bytes. Platform refusals are
// classified into cancelled, duplicate and failed; none of them are
// retried automatically.
package webauthn
