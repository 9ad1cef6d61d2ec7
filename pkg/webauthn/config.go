// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package webauthn

import "time"

const (
	// DefaultCeremonyTimeout bounds a single platform ceremony,
	// including the user interaction
	DefaultCeremonyTimeout = 60 * time.Second

	// DefaultLabel is used when a registration has no user-chosen label
	DefaultLabel = "Web PassKey"
)

// Config configures the ceremony adapter.
type Config struct {
	// CeremonyTimeout bounds each platform ceremony (default: 60s)
	CeremonyTimeout time.Duration

	// DefaultLabel names credentials registered without a label
	// (default: "Web PassKey")
	DefaultLabel string
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.CeremonyTimeout == 0 {
		c.CeremonyTimeout = DefaultCeremonyTimeout
	}
	if c.DefaultLabel == "" {
		c.DefaultLabel = DefaultLabel
	}
}
