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
	"net/url"
)

// ListPasskeys returns the passkeys registered to the account.
func (c *Client) ListPasskeys(ctx context.Context) ([]Passkey, error) {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/api/passkey",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewError("list passkeys", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	env, err := resp.Decode()
	if err != nil {
		return nil, NewError("list passkeys", err)
	}

	var passkeys []Passkey
	if err := json.Unmarshal(env.Data, &passkeys); err != nil {
		return nil, NewError("list passkeys", err)
	}
	return passkeys, nil
}

// RenamePasskey changes the display name of a registered passkey.
func (c *Client) RenamePasskey(ctx context.Context, uuid, name string) error {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   "/api/passkey",
		Body:   passkeyRenameRequest{UUID: uuid, Name: name},
	})
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewError("rename passkey", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}
	return nil
}

// DeletePasskey removes a registered passkey.
func (c *Client) DeletePasskey(ctx context.Context, uuid string) error {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   "/api/passkey/" + url.PathEscape(uuid),
	})
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewError("delete passkey", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}
	return nil
}
