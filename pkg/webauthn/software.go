// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package webauthn

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/descope/virtualwebauthn"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"

	"github.com/uptimelabs/go-identity/pkg/encoding"
)

// SoftwareAuthenticator is an in-process Authenticator backed by a
// virtual authenticator. It produces real attestation and assertion
// bytes, which makes headless logins and end-to-end tests possible
// without a platform authenticator.
type SoftwareAuthenticator struct {
	rp virtualwebauthn.RelyingParty

	mu          sync.Mutex
	auth        virtualwebauthn.Authenticator
	credentials []virtualwebauthn.Credential
}

// NewSoftwareAuthenticator creates a software authenticator for the
// given relying party. Origin must match the origin the server expects
// in client data.
func NewSoftwareAuthenticator(rpID, rpName, origin string) *SoftwareAuthenticator {
	return &SoftwareAuthenticator{
		rp: virtualwebauthn.RelyingParty{
			ID:     rpID,
			Name:   rpName,
			Origin: origin,
		},
		auth: virtualwebauthn.NewAuthenticator(),
	}
}

// CreateCredential mints a new EC2 credential for the challenge. When
// the exclusion list names a credential this authenticator already
// holds, the ceremony is refused the way a platform reports an already
// registered authenticator.
func (s *SoftwareAuthenticator) CreateCredential(ctx context.Context, options *CredentialCreationOptions) (*AttestationCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CeremonyError{Name: errNameAbort, Message: err.Error()}
	}

	optionsJSON, err := json.Marshal(attestationWire(options))
	if err != nil {
		return nil, NewError("create credential", err)
	}

	parsed, err := virtualwebauthn.ParseAttestationOptions(string(optionsJSON))
	if err != nil {
		return nil, NewError("create credential", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.credentials {
		if s.credentials[i].IsExcludedForAttestation(*parsed) {
			return nil, &CeremonyError{
				Name:    errNameInvalidState,
				Message: "credential already registered for this account",
			}
		}
	}

	credential := virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2)
	responseJSON := virtualwebauthn.CreateAttestationResponse(s.rp, s.auth, credential, *parsed)

	var response struct {
		ID       string                    `json:"id"`
		RawID    protocol.URLEncodedBase64 `json:"rawId"`
		Type     string                    `json:"type"`
		Response struct {
			AttestationObject protocol.URLEncodedBase64 `json:"attestationObject"`
			ClientDataJSON    protocol.URLEncodedBase64 `json:"clientDataJSON"`
		} `json:"response"`
	}
	if err := json.Unmarshal([]byte(responseJSON), &response); err != nil {
		return nil, NewError("create credential", err)
	}

	s.auth.AddCredential(credential)
	s.credentials = append(s.credentials, credential)

	return &AttestationCredential{
		ID:                      response.ID,
		RawID:                   response.RawID,
		AttestationObject:       response.Response.AttestationObject,
		ClientDataJSON:          response.Response.ClientDataJSON,
		Transports:              []protocol.AuthenticatorTransport{protocol.Internal},
		AuthenticatorAttachment: string(protocol.Platform),
	}, nil
}

// GetAssertion signs the challenge with a held credential. With no
// credential to present, the ceremony is refused the way a platform
// reports a user failure.
func (s *SoftwareAuthenticator) GetAssertion(ctx context.Context, options *CredentialRequestOptions) (*AssertionCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CeremonyError{Name: errNameAbort, Message: err.Error()}
	}

	optionsJSON, err := json.Marshal(assertionWire(options))
	if err != nil {
		return nil, NewError("get assertion", err)
	}

	parsed, err := virtualwebauthn.ParseAssertionOptions(string(optionsJSON))
	if err != nil {
		return nil, NewError("get assertion", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.credentials) == 0 {
		return nil, &CeremonyError{
			Name:    errNameNotAllowed,
			Message: "no credential available for this relying party",
		}
	}
	credential := s.credentials[len(s.credentials)-1]

	responseJSON := virtualwebauthn.CreateAssertionResponse(s.rp, s.auth, credential, *parsed)

	var response struct {
		ID       string                    `json:"id"`
		RawID    protocol.URLEncodedBase64 `json:"rawId"`
		Type     string                    `json:"type"`
		Response struct {
			AuthenticatorData protocol.URLEncodedBase64 `json:"authenticatorData"`
			ClientDataJSON    protocol.URLEncodedBase64 `json:"clientDataJSON"`
			Signature         protocol.URLEncodedBase64 `json:"signature"`
			UserHandle        protocol.URLEncodedBase64 `json:"userHandle,omitempty"`
		} `json:"response"`
	}
	if err := json.Unmarshal([]byte(responseJSON), &response); err != nil {
		return nil, NewError("get assertion", err)
	}

	assertion := &AssertionCredential{
		ID:                response.ID,
		RawID:             response.RawID,
		AuthenticatorData: response.Response.AuthenticatorData,
		ClientDataJSON:    response.Response.ClientDataJSON,
		Signature:         response.Response.Signature,
	}
	if len(response.Response.UserHandle) > 0 {
		assertion.UserHandle = response.Response.UserHandle
	}
	return assertion, nil
}

// attestationWire re-encodes decoded creation options into the standard
// JSON shape the virtual authenticator parses.
func attestationWire(options *CredentialCreationOptions) *RegistrationOptions {
	params := options.PubKeyCredParams
	if len(params) == 0 {
		params = []protocol.CredentialParameter{{
			Type:      protocol.PublicKeyCredentialType,
			Algorithm: webauthncose.AlgES256,
		}}
	}

	excluded := make([]CredentialDescriptor, 0, len(options.ExcludeCredentialIDs))
	for _, id := range options.ExcludeCredentialIDs {
		excluded = append(excluded, CredentialDescriptor{
			Type: string(protocol.PublicKeyCredentialType),
			ID:   encoding.Encode(id),
		})
	}

	return &RegistrationOptions{
		Challenge:          encoding.Encode(options.Challenge),
		RelyingParty:       options.RelyingParty,
		User: WireUserInfo{
			ID:          encoding.Encode(options.User.ID),
			Name:        options.User.Name,
			DisplayName: options.User.DisplayName,
		},
		PubKeyCredParams:   params,
		Timeout:            options.Timeout,
		ExcludeCredentials: excluded,
		Attestation:        options.Attestation,
	}
}

// assertionWire re-encodes decoded request options into the standard
// JSON shape the virtual authenticator parses.
func assertionWire(options *CredentialRequestOptions) *AuthenticationOptions {
	return &AuthenticationOptions{
		Challenge:        encoding.Encode(options.Challenge),
		RelyingPartyID:   options.RelyingPartyID,
		Timeout:          options.Timeout,
		UserVerification: options.UserVerification,
	}
}

var _ Authenticator = (*SoftwareAuthenticator)(nil)

// String identifies the authenticator in diagnostics.
func (s *SoftwareAuthenticator) String() string {
	return fmt.Sprintf("software authenticator (rp=%s)", s.rp.ID)
}
