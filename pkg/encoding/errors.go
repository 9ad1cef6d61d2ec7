// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package encoding

import (
	"errors"
	"fmt"
)

// ErrMalformedEncoding is returned when input contains characters outside
// the base64url alphabet or cannot form a valid base64 quantum. It is
// never expected on well-formed server data and is fatal to the operation
// that triggered it.
var ErrMalformedEncoding = errors.New("malformed base64url encoding")

// Error wraps an encoding failure with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given operation and error.
func NewError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// IsMalformed returns true if the error indicates malformed base64url input.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedEncoding)
}
