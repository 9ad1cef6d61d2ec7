// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package client implements the identity server client: bearer token
// attachment, transparent single-flight token refresh on 401 with a
// single replay, and the authentication, passkey and profile operations
// of the identity API.
//
// Concurrent calls that hit 401 share one refresh: the first caller
// performs the refresh, later callers queue and are resumed in arrival
// order with the shared outcome. A failed refresh tears down the local
// session and rejects every queued caller with ErrRefreshFailed.
package client
