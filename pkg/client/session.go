// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionInfo describes the local session without calling the server.
// When the stored token is a JWT its claims are surfaced without
// signature verification; the server remains the authority on validity.
// Opaque tokens yield an authenticated session with no claim details.
func (c *Client) SessionInfo() *Session {
	token, ok := c.store.Get()
	if !ok {
		return &Session{}
	}

	session := &Session{Authenticated: true}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return session
	}

	if sub, err := claims.GetSubject(); err == nil {
		session.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		session.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}

	return session
}
