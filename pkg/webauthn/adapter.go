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
	"errors"
	"fmt"
	"net/http"

	"github.com/uptimelabs/go-identity/pkg/client"
	"github.com/uptimelabs/go-identity/pkg/logging"
	"github.com/uptimelabs/go-identity/pkg/metrics"
)

// Params holds the dependencies for creating an Adapter.
type Params struct {
	// Client performs the server calls (required)
	Client *client.Client

	// Authenticator drives the platform ceremonies (required)
	Authenticator Authenticator

	// Config tunes ceremony behavior (optional)
	Config *Config

	// Logger receives adapter diagnostics (default: silent)
	Logger *logging.Logger
}

// Adapter runs passkey registration and authentication ceremonies
// against the identity server.
type Adapter struct {
	client        *client.Client
	authenticator Authenticator
	config        *Config
	logger        *logging.Logger
}

// NewAdapter creates a new ceremony adapter.
func NewAdapter(params *Params) (*Adapter, error) {
	if params == nil || params.Client == nil {
		return nil, NewError("new adapter", errors.New("client is required"))
	}
	if params.Authenticator == nil {
		return nil, NewError("new adapter", errors.New("authenticator is required"))
	}

	cfg := params.Config
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.SetDefaults()

	logger := params.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Adapter{
		client:        params.Client,
		authenticator: params.Authenticator,
		config:        cfg,
		logger:        logger,
	}, nil
}

// Register runs the registration ceremony and adds the resulting
// credential to the authenticated account. An empty label falls back to
// the configured default.
func (a *Adapter) Register(ctx context.Context, label string) (*RegistrationResult, error) {
	result, err := a.register(ctx, label)
	metrics.RecordCeremony(metrics.FlowRegistration, err == nil)
	return result, err
}

func (a *Adapter) register(ctx context.Context, label string) (*RegistrationResult, error) {
	resp, err := a.client.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   "/webauthn/register/options",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewError("fetch registration options", &RejectedError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			kind:       ErrRegistrationRejected,
		})
	}

	var wire RegistrationOptions
	if err := json.Unmarshal(resp.Body, &wire); err != nil {
		return nil, NewError("fetch registration options", err)
	}
	options, err := wire.Decode()
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, a.config.CeremonyTimeout)
	defer cancel()

	credential, err := a.authenticator.CreateCredential(cctx, options)
	if err != nil {
		a.logger.Debugf("registration ceremony refused: %v", err)
		return nil, NewError("create credential", err)
	}

	if label == "" {
		label = a.config.DefaultLabel
	}

	submit, err := a.client.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   "/webauthn/register",
		Body:   newRegistrationPayload(credential, label),
	})
	if err != nil {
		return nil, err
	}
	if submit.StatusCode < 200 || submit.StatusCode >= 300 {
		return nil, NewError("submit registration", &RejectedError{
			StatusCode: submit.StatusCode,
			Body:       submit.Body,
			kind:       ErrRegistrationRejected,
		})
	}

	var result RegistrationResult
	if err := json.Unmarshal(submit.Body, &result); err != nil {
		return nil, NewError("submit registration", err)
	}
	a.logger.Debug("passkey registered", "credentialId", result.CredentialID, "label", label)

	return &result, nil
}

// Authenticate runs the authentication ceremony and exchanges the
// verified credential for an access token, which is stored on the
// client's token store.
func (a *Adapter) Authenticate(ctx context.Context) (string, error) {
	token, err := a.authenticate(ctx)
	metrics.RecordCeremony(metrics.FlowAuthentication, err == nil)
	return token, err
}

func (a *Adapter) authenticate(ctx context.Context) (string, error) {
	resp, err := a.client.Do(ctx, &client.Request{
		Method:          http.MethodPost,
		Path:            "/webauthn/authenticate/options",
		SkipAuthRefresh: true,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", NewError("fetch authentication options", &RejectedError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			kind:       ErrAssertionRejected,
		})
	}

	var wire AuthenticationOptions
	if err := json.Unmarshal(resp.Body, &wire); err != nil {
		return "", NewError("fetch authentication options", err)
	}
	options, err := wire.Decode()
	if err != nil {
		return "", err
	}

	cctx, cancel := context.WithTimeout(ctx, a.config.CeremonyTimeout)
	defer cancel()

	assertion, err := a.authenticator.GetAssertion(cctx, options)
	if err != nil {
		a.logger.Debugf("authentication ceremony refused: %v", err)
		return "", NewError("get assertion", err)
	}

	submit, err := a.client.Do(ctx, &client.Request{
		Method:          http.MethodPost,
		Path:            "/webauthn/authenticate",
		Body:            newAssertionPayload(assertion),
		SkipAuthRefresh: true,
	})
	if err != nil {
		return "", err
	}
	if submit.StatusCode < 200 || submit.StatusCode >= 300 {
		return "", NewError("submit assertion", &RejectedError{
			StatusCode: submit.StatusCode,
			Body:       submit.Body,
			kind:       ErrAssertionRejected,
		})
	}

	token, err := a.client.PasskeyToken(ctx, assertion.ID)
	if err != nil {
		return "", fmt.Errorf("exchange credential for token: %w", err)
	}
	a.logger.Debug("passkey authentication completed")

	return token, nil
}
