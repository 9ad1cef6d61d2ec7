// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/uptimelabs/go-identity/pkg/metrics"
)

// HTTP headers attached to every call.
const (
	HeaderClient    = "X-Client"
	HeaderRequestID = "X-Request-ID"
)

// Request describes a single call to the identity server.
type Request struct {
	// Method is the HTTP method
	Method string

	// Path is the server path, e.g. /auth/login
	Path string

	// Body is marshalled to JSON when non-nil
	Body any

	// SkipAuthRefresh excludes this call from bearer attachment and
	// from the 401 refresh-and-retry cycle. Set on the refresh, logout
	// and passkey login calls.
	SkipAuthRefresh bool
}

// Response is a completed call. Any status the server produced is
// returned here; only the 401 recovery cycle is handled inside Do, so
// callers interpret their own status codes.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body envelope.
func (r *Response) Decode() (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	return &env, nil
}

// Do performs a call with bearer attachment and 401 recovery. On a 401
// for an authenticated call it refreshes the access token and replays
// the call exactly once; a second 401 means the session cannot be
// recovered and surfaces as ErrAuthenticationExpired.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || req.SkipAuthRefresh {
		return resp, nil
	}

	c.logger.Debugf("401 on %s %s, refreshing token", req.Method, req.Path)
	if _, err := c.refresher.Refresh(ctx); err != nil {
		return nil, err
	}

	metrics.RecordRetry()
	retry, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if retry.StatusCode == http.StatusUnauthorized {
		return nil, NewError(req.Method+" "+req.Path, ErrAuthenticationExpired)
	}
	return retry, nil
}

// send performs one HTTP round trip without any 401 handling.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	var reqBody io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderClient, c.config.ClientTag)
	httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	if !req.SkipAuthRefresh {
		if token, ok := c.store.Get(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.RecordRequest(req.Method, strconv.Itoa(httpResp.StatusCode))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}
