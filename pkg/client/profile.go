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

// CurrentUser returns the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*Profile, error) {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/api/user",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewError("current user", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	env, err := resp.Decode()
	if err != nil {
		return nil, NewError("current user", err)
	}

	var profile Profile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return nil, NewError("current user", err)
	}
	return &profile, nil
}

// UpdatePassword changes the account password.
func (c *Client) UpdatePassword(ctx context.Context, current, updated string) error {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   "/api/profile/password",
		Body:   passwordUpdateRequest{CurrentPassword: current, NewPassword: updated},
	})
	if err != nil {
		return err
	}

	env, decodeErr := resp.Decode()
	if decodeErr == nil && env.Result == ResultPasswordMismatch {
		return NewError("update password", ErrCredentialMismatch)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewError("update password", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}
	return nil
}
