// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// TokenFileName is the fixed name of the persisted token file.
	TokenFileName = "access_token"

	dirPerms  = 0700
	filePerms = 0600
)

// File is a Store that persists the token to a single 0600 file so a new
// process retains the session. The in-memory copy is authoritative after
// construction; the file is read once and rewritten on every mutation.
type File struct {
	mu    sync.RWMutex
	path  string
	token string
	held  bool
}

// NewFile creates a file-backed token store rooted at dir. The directory
// is created with 0700 permissions if it does not exist, and an existing
// token file is loaded so a restarted client resumes its session.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("token store: directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("token store: failed to create directory: %w", err)
	}

	f := &File{path: filepath.Join(dir, TokenFileName)}

	data, err := os.ReadFile(f.path)
	switch {
	case err == nil:
		f.token = strings.TrimSpace(string(data))
		f.held = f.token != ""
	case os.IsNotExist(err):
		// No persisted session.
	default:
		return nil, fmt.Errorf("token store: failed to read %s: %w", f.path, err)
	}

	return f, nil
}

// Get returns the current access token.
func (f *File) Get() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token, f.held
}

// Set replaces the current access token and persists it.
func (f *File) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path, []byte(token), filePerms); err != nil {
		return fmt.Errorf("token store: failed to write %s: %w", f.path, err)
	}
	f.token = token
	f.held = true
	return nil
}

// Clear removes the current access token and deletes the persisted file.
// A missing file is not an error.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("token store: failed to remove %s: %w", f.path, err)
	}
	f.token = ""
	f.held = false
	return nil
}

// Path returns the location of the persisted token file.
func (f *File) Path() string {
	return f.path
}
