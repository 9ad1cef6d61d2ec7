// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package tokenstore

import "sync"

// Memory is an in-memory Store. It is fully thread-safe and every read
// observes the most recently completed Set or Clear.
type Memory struct {
	mu    sync.RWMutex
	token string
	held  bool
}

// NewMemory creates a new in-memory token store.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the current access token.
func (m *Memory) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.held
}

// Set replaces the current access token.
func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.held = true
	return nil
}

// Clear removes the current access token.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.held = false
	return nil
}
