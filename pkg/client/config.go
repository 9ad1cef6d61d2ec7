// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default per-call HTTP timeout
	DefaultTimeout = 10 * time.Second

	// DefaultRefreshTimeout bounds the shared token refresh call. The
	// refresh outcome is fanned out to every queued caller, so it runs
	// on its own deadline rather than any single caller's.
	DefaultRefreshTimeout = 15 * time.Second

	// DefaultClientTag identifies this client in the X-Client header
	DefaultClientTag = "go-identity"
)

// Config configures the identity client.
type Config struct {
	// Address is the identity server address, with or without scheme
	// (host:port, http://host:port or https://host:port)
	Address string

	// Timeout is the per-call HTTP timeout (default: 10s)
	Timeout time.Duration

	// RefreshTimeout bounds the shared token refresh call (default: 15s)
	RefreshTimeout time.Duration

	// ClientTag is sent as the X-Client header on every call
	ClientTag string

	// TLSEnabled enables TLS
	TLSEnabled bool

	// TLSInsecureSkipVerify skips TLS certificate verification (not recommended)
	TLSInsecureSkipVerify bool

	// TLSCAFile is the path to the CA certificate file
	TLSCAFile string

	// TLSCertFile is the path to the client certificate file (for mTLS)
	TLSCertFile string

	// TLSKeyFile is the path to the client key file (for mTLS)
	TLSKeyFile string

	// Headers are additional HTTP headers to include in every call
	Headers map[string]string
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RefreshTimeout == 0 {
		c.RefreshTimeout = DefaultRefreshTimeout
	}
	if c.ClientTag == "" {
		c.ClientTag = DefaultClientTag
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("%w: TLS client certificate and key must be set together", ErrInvalidConfig)
	}
	return nil
}

// baseURL normalizes the configured address into a base URL without a
// trailing slash.
func (c *Config) baseURL() string {
	base := c.Address
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		if c.TLSEnabled {
			base = "https://" + base
		} else {
			base = "http://" + base
		}
	}
	return strings.TrimSuffix(base, "/")
}

// httpClient builds the HTTP client, including TLS setup when enabled.
func (c *Config) httpClient() (*http.Client, error) {
	var tlsConfig *tls.Config
	if c.TLSEnabled {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: c.TLSInsecureSkipVerify,
			MinVersion:         tls.VersionTLS12,
		}

		if c.TLSCAFile != "" {
			caCert, err := os.ReadFile(c.TLSCAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsConfig.RootCAs = caCertPool
		}

		if c.TLSCertFile != "" && c.TLSKeyFile != "" {
			cert, err := tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsConfig.Certificates = []tls.Certificate{cert}
		}
	}

	return &http.Client{
		Timeout: c.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
		},
	}, nil
}
