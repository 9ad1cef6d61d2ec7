// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when the client configuration is invalid
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrAuthenticationExpired is returned when a call still receives 401
	// after a successful token refresh and replay
	ErrAuthenticationExpired = errors.New("authentication expired")

	// ErrRefreshFailed is returned when the token refresh call fails;
	// the local session is torn down when this happens
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrCredentialMismatch is returned when the server rejects an
	// email/password pair
	ErrCredentialMismatch = errors.New("email or password mismatch")

	// ErrUnexpectedStatus is returned when the server answers an
	// operation with a status the operation cannot interpret
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Error wraps a client error with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("client: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("client: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new client error for the given operation.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// IsAuthenticationExpired reports whether the error indicates a session
// that could not be recovered by a token refresh.
func IsAuthenticationExpired(err error) bool {
	return errors.Is(err, ErrAuthenticationExpired)
}

// IsRefreshFailed reports whether the error came from a failed token
// refresh.
func IsRefreshFailed(err error) bool {
	return errors.Is(err, ErrRefreshFailed)
}

// IsCredentialMismatch reports whether the error indicates rejected
// login credentials.
func IsCredentialMismatch(err error) bool {
	return errors.Is(err, ErrCredentialMismatch)
}
