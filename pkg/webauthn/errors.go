// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package webauthn

import (
	"errors"
	"fmt"
)

// Sentinel errors for passkey ceremonies.
var (
	// ErrCeremonyCancelled is returned when the user or platform
	// abandons the ceremony (refusal, timeout, abort)
	ErrCeremonyCancelled = errors.New("ceremony cancelled")

	// ErrCeremonyDuplicate is returned when the authenticator already
	// holds a credential for this account
	ErrCeremonyDuplicate = errors.New("authenticator already registered")

	// ErrCeremonyFailed is returned for any other platform failure
	ErrCeremonyFailed = errors.New("ceremony failed")

	// ErrRegistrationRejected is returned when the server rejects a
	// registration submission
	ErrRegistrationRejected = errors.New("registration rejected by server")

	// ErrAssertionRejected is returned when the server rejects an
	// assertion submission
	ErrAssertionRejected = errors.New("assertion rejected by server")
)

// Platform error names with a defined classification.
const (
	errNameNotAllowed   = "NotAllowedError"
	errNameAbort        = "AbortError"
	errNameTimeout      = "TimeoutError"
	errNameInvalidState = "InvalidStateError"
)

// CeremonyError is a platform authenticator refusal. Name carries the
// platform's error name verbatim so unknown refusals stay diagnosable.
type CeremonyError struct {
	Name    string
	Message string
}

func (e *CeremonyError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Name
}

// Unwrap classifies the platform error name into a sentinel.
func (e *CeremonyError) Unwrap() error {
	switch e.Name {
	case errNameNotAllowed, errNameAbort, errNameTimeout:
		return ErrCeremonyCancelled
	case errNameInvalidState:
		return ErrCeremonyDuplicate
	default:
		return ErrCeremonyFailed
	}
}

// RejectedError is a server-side rejection of a ceremony submission.
type RejectedError struct {
	StatusCode int
	Body       []byte
	kind       error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: status %d", e.kind, e.StatusCode)
}

func (e *RejectedError) Unwrap() error {
	return e.kind
}

// Error wraps a ceremony error with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("webauthn: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("webauthn: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new webauthn error for the given operation.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// IsCancelled reports whether the error is a user or platform
// cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCeremonyCancelled)
}

// IsDuplicate reports whether the error indicates the authenticator is
// already registered.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrCeremonyDuplicate)
}
