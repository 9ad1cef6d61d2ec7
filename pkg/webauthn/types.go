// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package webauthn

import (
	"github.com/go-webauthn/webauthn/protocol"

	"github.com/uptimelabs/go-identity/pkg/encoding"
)

// CredentialDescriptor references an existing credential on the wire.
type CredentialDescriptor struct {
	Type       string                            `json:"type"`
	ID         string                            `json:"id"`
	Transports []protocol.AuthenticatorTransport `json:"transports,omitempty"`
}

// RelyingPartyInfo identifies the relying party.
type RelyingPartyInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WireUserInfo is the account entity as sent by the server, with the
// user handle base64url-encoded.
type WireUserInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// RegistrationOptions is the server's challenge for a registration
// ceremony. Binary fields are unpadded base64url strings.
type RegistrationOptions struct {
	Challenge          string                         `json:"challenge"`
	RelyingParty       RelyingPartyInfo               `json:"rp"`
	User               WireUserInfo                   `json:"user"`
	PubKeyCredParams   []protocol.CredentialParameter `json:"pubKeyCredParams,omitempty"`
	Timeout            int                            `json:"timeout,omitempty"`
	ExcludeCredentials []CredentialDescriptor         `json:"excludeCredentials,omitempty"`
	Attestation        string                         `json:"attestation,omitempty"`
}

// UserInfo is the decoded account entity handed to the authenticator.
type UserInfo struct {
	ID          []byte
	Name        string
	DisplayName string
}

// CredentialCreationOptions is the decoded registration challenge.
type CredentialCreationOptions struct {
	Challenge            []byte
	RelyingParty         RelyingPartyInfo
	User                 UserInfo
	PubKeyCredParams     []protocol.CredentialParameter
	Timeout              int
	ExcludeCredentialIDs [][]byte
	Attestation          string
}

// Decode converts the wire options into authenticator-ready options.
// Every base64url field must decode; a missing exclusion list becomes
// an empty one.
func (o *RegistrationOptions) Decode() (*CredentialCreationOptions, error) {
	challenge, err := encoding.Decode(o.Challenge)
	if err != nil {
		return nil, NewError("decode registration options", err)
	}

	userID, err := encoding.Decode(o.User.ID)
	if err != nil {
		return nil, NewError("decode registration options", err)
	}

	excluded := make([][]byte, 0, len(o.ExcludeCredentials))
	for _, desc := range o.ExcludeCredentials {
		id, err := encoding.Decode(desc.ID)
		if err != nil {
			return nil, NewError("decode registration options", err)
		}
		excluded = append(excluded, id)
	}

	return &CredentialCreationOptions{
		Challenge:    challenge,
		RelyingParty: o.RelyingParty,
		User: UserInfo{
			ID:          userID,
			Name:        o.User.Name,
			DisplayName: o.User.DisplayName,
		},
		PubKeyCredParams:     o.PubKeyCredParams,
		Timeout:              o.Timeout,
		ExcludeCredentialIDs: excluded,
		Attestation:          o.Attestation,
	}, nil
}

// AuthenticationOptions is the server's challenge for an authentication
// ceremony.
type AuthenticationOptions struct {
	Challenge        string `json:"challenge"`
	RelyingPartyID   string `json:"rpId"`
	Timeout          int    `json:"timeout,omitempty"`
	UserVerification string `json:"userVerification,omitempty"`
}

// CredentialRequestOptions is the decoded authentication challenge.
type CredentialRequestOptions struct {
	Challenge        []byte
	RelyingPartyID   string
	Timeout          int
	UserVerification string
}

// Decode converts the wire options into authenticator-ready options.
// Only the challenge carries binary data in this flow.
func (o *AuthenticationOptions) Decode() (*CredentialRequestOptions, error) {
	challenge, err := encoding.Decode(o.Challenge)
	if err != nil {
		return nil, NewError("decode authentication options", err)
	}

	return &CredentialRequestOptions{
		Challenge:        challenge,
		RelyingPartyID:   o.RelyingPartyID,
		Timeout:          o.Timeout,
		UserVerification: o.UserVerification,
	}, nil
}

// AttestationCredential is a newly created credential as returned by
// the authenticator.
type AttestationCredential struct {
	// ID is the credential identifier (base64url of RawID)
	ID string

	// RawID is the raw credential identifier
	RawID []byte

	// AttestationObject and ClientDataJSON are the raw ceremony outputs
	AttestationObject []byte
	ClientDataJSON    []byte

	// Transports the authenticator reports for this credential
	Transports []protocol.AuthenticatorTransport

	// AuthenticatorAttachment is "platform" or "cross-platform" when known
	AuthenticatorAttachment string
}

// AssertionCredential is a signed assertion as returned by the
// authenticator.
type AssertionCredential struct {
	ID    string
	RawID []byte

	AuthenticatorData []byte
	ClientDataJSON    []byte
	Signature         []byte

	// UserHandle is nil when the authenticator did not release one
	UserHandle []byte
}

// registrationPayload mirrors the server's expected registration body.
type registrationPayload struct {
	PublicKey registrationPublicKey `json:"publicKey"`
}

type registrationPublicKey struct {
	Credential registrationCredential `json:"credential"`
	Label      string                 `json:"label"`
}

type registrationCredential struct {
	ID                      string                  `json:"id"`
	RawID                   string                  `json:"rawId"`
	Response                attestationResponseBody `json:"response"`
	Type                    string                  `json:"type"`
	ClientExtensionResults  map[string]any          `json:"clientExtensionResults"`
	AuthenticatorAttachment string                  `json:"authenticatorAttachment,omitempty"`
}

type attestationResponseBody struct {
	AttestationObject string                            `json:"attestationObject"`
	ClientDataJSON    string                            `json:"clientDataJSON"`
	Transports        []protocol.AuthenticatorTransport `json:"transports"`
}

// newRegistrationPayload serializes an attestation credential. The
// transports list is always present, empty when unknown.
func newRegistrationPayload(cred *AttestationCredential, label string) *registrationPayload {
	transports := cred.Transports
	if transports == nil {
		transports = []protocol.AuthenticatorTransport{}
	}

	return &registrationPayload{
		PublicKey: registrationPublicKey{
			Credential: registrationCredential{
				ID:    cred.ID,
				RawID: encoding.Encode(cred.RawID),
				Response: attestationResponseBody{
					AttestationObject: encoding.Encode(cred.AttestationObject),
					ClientDataJSON:    encoding.Encode(cred.ClientDataJSON),
					Transports:        transports,
				},
				Type:                    "public-key",
				ClientExtensionResults:  map[string]any{},
				AuthenticatorAttachment: cred.AuthenticatorAttachment,
			},
			Label: label,
		},
	}
}

// assertionPayload mirrors the server's expected assertion body.
type assertionPayload struct {
	ID       string                `json:"id"`
	RawID    string                `json:"rawId"`
	Response assertionResponseBody `json:"response"`
}

type assertionResponseBody struct {
	AuthenticatorData string `json:"authenticatorData"`
	ClientDataJSON    string `json:"clientDataJSON"`
	Signature         string `json:"signature"`

	// UserHandle is omitted entirely when the authenticator released none
	UserHandle string `json:"userHandle,omitempty"`
}

// newAssertionPayload serializes an assertion credential.
func newAssertionPayload(cred *AssertionCredential) *assertionPayload {
	payload := &assertionPayload{
		ID:    cred.ID,
		RawID: encoding.Encode(cred.RawID),
		Response: assertionResponseBody{
			AuthenticatorData: encoding.Encode(cred.AuthenticatorData),
			ClientDataJSON:    encoding.Encode(cred.ClientDataJSON),
			Signature:         encoding.Encode(cred.Signature),
		},
	}
	if cred.UserHandle != nil {
		payload.Response.UserHandle = encoding.Encode(cred.UserHandle)
	}
	return payload
}

// RegistrationResult is the server's acknowledgement of a registration.
type RegistrationResult struct {
	CredentialID string                            `json:"credentialId"`
	Transports   []protocol.AuthenticatorTransport `json:"transports,omitempty"`
}
