// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package config loads the CLI configuration from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/uptimelabs/go-identity/pkg/client"
)

// Config is the CLI application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	WebAuthn WebAuthnConfig `mapstructure:"webauthn"`

	// TokenDir is where the access token file lives
	TokenDir string `mapstructure:"token_dir"`

	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose"`
}

// ServerConfig points the CLI at an identity server.
type ServerConfig struct {
	Address string `mapstructure:"address"`

	// Timeout is the per-call timeout in seconds
	Timeout int `mapstructure:"timeout"`

	TLSEnabled            bool   `mapstructure:"tls_enabled"`
	TLSInsecureSkipVerify bool   `mapstructure:"tls_insecure_skip_verify"`
	TLSCAFile             string `mapstructure:"tls_ca_file"`
	TLSCertFile           string `mapstructure:"tls_cert_file"`
	TLSKeyFile            string `mapstructure:"tls_key_file"`
}

// WebAuthnConfig configures the software authenticator used for
// headless passkey ceremonies.
type WebAuthnConfig struct {
	RPID   string `mapstructure:"rp_id"`
	RPName string `mapstructure:"rp_name"`
	Origin string `mapstructure:"origin"`
}

// DefaultTokenDir returns the default location of the token file.
func DefaultTokenDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".identity"
	}
	return filepath.Join(home, ".identity")
}

// LoadConfig loads configuration from the given file, falling back to
// $HOME/.identity.yaml. Environment variables prefixed with IDENTITY_
// override file values. A missing config file is not an error; defaults
// apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", "localhost:8080")
	v.SetDefault("server.timeout", 10)
	v.SetDefault("webauthn.rp_id", "localhost")
	v.SetDefault("webauthn.rp_name", "Uptime")
	v.SetDefault("webauthn.origin", "http://localhost")
	v.SetDefault("token_dir", DefaultTokenDir())
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("IDENTITY")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.SetConfigName(".identity")
			v.SetConfigType("yaml")
			v.AddConfigPath(home)
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, fmt.Errorf("failed to read config file: %w", err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &cfg, nil
}

// ClientConfig converts the CLI configuration into a client configuration.
func (c *Config) ClientConfig() *client.Config {
	return &client.Config{
		Address:               c.Server.Address,
		Timeout:               time.Duration(c.Server.Timeout) * time.Second,
		TLSEnabled:            c.Server.TLSEnabled,
		TLSInsecureSkipVerify: c.Server.TLSInsecureSkipVerify,
		TLSCAFile:             c.Server.TLSCAFile,
		TLSCertFile:           c.Server.TLSCertFile,
		TLSKeyFile:            c.Server.TLSKeyFile,
	}
}
