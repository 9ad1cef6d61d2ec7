// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package tokenstore holds the current access token for a session. The
// token is the only persisted state the SDK owns: its absence means
// "logged out". Backends are swappable; Memory suits tests and embedded
// use, File survives process restarts the way browser local storage
// survives a page reload.
package tokenstore

import "errors"

// ErrStoreUnavailable is returned when the backing store cannot be read
// or written.
var ErrStoreUnavailable = errors.New("token store unavailable")

// Store is the process-wide holder of the current access token.
// All implementations must be safe for concurrent use. The token is
// written only by the refresh coordinator and the login/logout flows;
// every other component reads through Get and never caches a copy
// beyond a single call.
type Store interface {
	// Get returns the current access token. The second return value is
	// false when no token is held.
	Get() (string, bool)

	// Set replaces the current access token.
	Set(token string) error

	// Clear removes the current access token.
	Clear() error
}
