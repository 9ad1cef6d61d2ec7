// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"encoding/json"
	"time"
)

// Result codes used by the identity server envelope.
const (
	ResultSuccess          = "SUCCESS"
	ResultPasswordMismatch = "PASSWORD_MISMATCH"
)

// Envelope is the response wrapper used by every identity server endpoint.
type Envelope struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenData carries an issued access token.
type TokenData struct {
	AccessToken string `json:"accessToken"`
}

type passkeyLoginRequest struct {
	CredentialID string `json:"credentialId"`
}

type passkeyRenameRequest struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Passkey describes a passkey registered to the account.
type Passkey struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	ProfileImage string    `json:"profileImage"`
	UseGravatar  bool      `json:"useGravatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type passwordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Session describes the local session derived from the stored token.
type Session struct {
	// Authenticated is true when a token is held locally
	Authenticated bool

	// Subject is the token subject claim, when the token is a JWT
	Subject string

	// Email is the email claim, when present
	Email string

	// IssuedAt and ExpiresAt are the token validity claims, when present
	IssuedAt  time.Time
	ExpiresAt time.Time
}
