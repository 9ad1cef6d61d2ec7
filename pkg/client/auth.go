// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Login authenticates with an email/password pair and stores the issued
// access token. A server-side credential rejection surfaces as
// ErrCredentialMismatch and clears any previously held token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return err
	}

	env, err := resp.Decode()
	if err != nil {
		return NewError("login", err)
	}

	if env.Result == ResultPasswordMismatch {
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Errorf("failed to clear token store: %v", clearErr)
		}
		return NewError("login", ErrCredentialMismatch)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewError("login", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	var data TokenData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return NewError("login", err)
	}
	if data.AccessToken == "" {
		return NewError("login", fmt.Errorf("server returned no access token"))
	}

	if err := c.store.Set(data.AccessToken); err != nil {
		return NewError("login", err)
	}
	c.logger.Debug("logged in", "email", email)

	return nil
}

// Logout invalidates the server-side session. The locally held token is
// cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.Do(ctx, &Request{
		Method:          http.MethodPost,
		Path:            "/auth/logout",
		SkipAuthRefresh: true,
	})

	if clearErr := c.store.Clear(); clearErr != nil {
		c.logger.Errorf("failed to clear token store: %v", clearErr)
	}

	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewError("logout", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}
	return nil
}

// PasskeyToken exchanges a verified passkey credential ID for an access
// token and stores it.
func (c *Client) PasskeyToken(ctx context.Context, credentialID string) (string, error) {
	resp, err := c.Do(ctx, &Request{
		Method:          http.MethodPost,
		Path:            "/auth/login/passkey",
		Body:            passkeyLoginRequest{CredentialID: credentialID},
		SkipAuthRefresh: true,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", NewError("passkey login", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	env, err := resp.Decode()
	if err != nil {
		return "", NewError("passkey login", err)
	}
	var data TokenData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", NewError("passkey login", err)
	}
	if data.AccessToken == "" {
		return "", NewError("passkey login", fmt.Errorf("server returned no access token"))
	}

	if err := c.store.Set(data.AccessToken); err != nil {
		return "", NewError("passkey login", err)
	}

	return data.AccessToken, nil
}

// doRefresh performs the refresh call itself. The session cookie carries
// the refresh credential, so no bearer token is attached.
func (c *Client) doRefresh(ctx context.Context) (string, error) {
	resp, err := c.Do(ctx, &Request{
		Method:          http.MethodPost,
		Path:            "/auth/refresh",
		SkipAuthRefresh: true,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	env, err := resp.Decode()
	if err != nil {
		return "", err
	}
	var data TokenData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("refresh returned no access token")
	}

	return data.AccessToken, nil
}
