// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package webauthn

import "context"

// Authenticator drives a platform authenticator through a ceremony.
// Implementations surface platform refusals as *CeremonyError so the
// adapter can classify them.
type Authenticator interface {
	// CreateCredential performs the credential creation ceremony for a
	// registration challenge.
	CreateCredential(ctx context.Context, options *CredentialCreationOptions) (*AttestationCredential, error)

	// GetAssertion performs the assertion ceremony for an
	// authentication challenge.
	GetAssertion(ctx context.Context, options *CredentialRequestOptions) (*AssertionCredential, error)
}
