// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"net/http"

	"github.com/uptimelabs/go-identity/pkg/logging"
	"github.com/uptimelabs/go-identity/pkg/tokenstore"
)

// Params holds the dependencies for creating a Client.
type Params struct {
	// Config is the client configuration (required)
	Config *Config

	// TokenStore holds the access token (default: in-memory store)
	TokenStore tokenstore.Store

	// Logger receives client diagnostics (default: silent)
	Logger *logging.Logger

	// OnSessionExpired is invoked after a failed token refresh has torn
	// down the local session (optional)
	OnSessionExpired func()

	// HTTPClient overrides the HTTP client built from Config (optional)
	HTTPClient *http.Client
}

// Client is the identity server client. It attaches the bearer token to
// outgoing calls, transparently refreshes it on 401, and exposes the
// authentication and account operations of the identity API.
type Client struct {
	config     *Config
	baseURL    string
	httpClient *http.Client
	store      tokenstore.Store
	logger     *logging.Logger
	refresher  *refreshCoordinator
}

// New creates a new identity client.
func New(params *Params) (*Client, error) {
	if params == nil || params.Config == nil {
		return nil, NewError("new client", ErrInvalidConfig)
	}

	cfg := params.Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, NewError("new client", err)
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = cfg.httpClient()
		if err != nil {
			return nil, NewError("new client", err)
		}
	}

	store := params.TokenStore
	if store == nil {
		store = tokenstore.NewMemory()
	}

	logger := params.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	c := &Client{
		config:     cfg,
		baseURL:    cfg.baseURL(),
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
	c.refresher = &refreshCoordinator{
		run:              c.doRefresh,
		store:            store,
		timeout:          cfg.RefreshTimeout,
		onSessionExpired: params.OnSessionExpired,
		logger:           logger,
	}

	return c, nil
}

// Token returns the currently held access token, if any.
func (c *Client) Token() (string, bool) {
	return c.store.Get()
}

// TokenStore returns the client's token store.
func (c *Client) TokenStore() tokenstore.Store {
	return c.store
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
