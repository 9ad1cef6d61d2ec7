// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptimelabs/go-identity/pkg/tokenstore"
)

// newTestClient creates a client pointed at a test server backed by mux.
func newTestClient(t *testing.T, mux http.Handler) (*Client, *tokenstore.Memory) {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemory()
	c, err := New(&Params{
		Config:     &Config{Address: srv.URL},
		TokenStore: store,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, store
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(&Params{Config: &Config{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(&Params{Config: &Config{Address: "localhost:8080", TLSCertFile: "cert.pem"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogin_StoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"accessToken":"T1"}}`))
	})

	c, store := newTestClient(t, mux)

	err := c.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	token, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "T1", token)
}

func TestLogin_CredentialMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"result":"PASSWORD_MISMATCH"}`))
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("leftover"))

	err := c.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrCredentialMismatch)
	assert.True(t, IsCredentialMismatch(err))

	_, ok := store.Get()
	assert.False(t, ok, "stored token should be cleared on credential mismatch")
}

func TestDo_AttachesBearerAndHeaders(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultClientTag, r.Header.Get(HeaderClient))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"email":"user@example.com","name":"User"}}`))
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	profile, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", profile.Email)
	assert.Equal(t, "User", profile.Name)
}

func TestDo_SkipAuthOmitsBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"accessToken":"fresh"}}`))
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	resp, err := c.Do(context.Background(), &Request{
		Method:          http.MethodPost,
		Path:            "/auth/refresh",
		SkipAuthRefresh: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDo_NonAuthStatusPassesThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/passkey/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodDelete,
		Path:   "/api/passkey/missing",
	})
	require.NoError(t, err, "non-401 statuses are returned, not raised")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogout_ClearsTokenEvenOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusInternalServerError)
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	err := c.Logout(context.Background())
	assert.Error(t, err)

	_, ok := store.Get()
	assert.False(t, ok, "local token is cleared regardless of server outcome")
}

func TestPasskeyToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/passkey", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"accessToken":"passkey-token"}}`))
	})

	c, store := newTestClient(t, mux)

	token, err := c.PasskeyToken(context.Background(), "Y3JlZA")
	require.NoError(t, err)
	assert.Equal(t, "passkey-token", token)

	stored, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "passkey-token", stored)
}

func TestPasskeyManagement(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/passkey", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"result":"SUCCESS","data":[{"uuid":"pk-1","name":"Laptop"},{"uuid":"pk-2","name":"Phone"}]}`))
		case http.MethodPut:
			_, _ = w.Write([]byte(`{"result":"SUCCESS"}`))
		}
	})
	mux.HandleFunc("/api/passkey/pk-2", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS"}`))
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	passkeys, err := c.ListPasskeys(context.Background())
	require.NoError(t, err)
	require.Len(t, passkeys, 2)
	assert.Equal(t, "pk-1", passkeys[0].UUID)
	assert.Equal(t, "Laptop", passkeys[0].Name)

	require.NoError(t, c.RenamePasskey(context.Background(), "pk-1", "Work Laptop"))
	require.NoError(t, c.DeletePasskey(context.Background(), "pk-2"))
}

func TestSessionInfo(t *testing.T) {
	c, store := newTestClient(t, http.NewServeMux())

	// No token held
	session := c.SessionInfo()
	assert.False(t, session.Authenticated)

	// Opaque token
	require.NoError(t, store.Set("not-a-jwt"))
	session = c.SessionInfo()
	assert.True(t, session.Authenticated)
	assert.Empty(t, session.Subject)

	// JWT with claims
	now := time.Now().Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "user@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.Set(signed))

	session = c.SessionInfo()
	assert.True(t, session.Authenticated)
	assert.Equal(t, "user-1", session.Subject)
	assert.Equal(t, "user@example.com", session.Email)
	assert.Equal(t, now.Add(time.Hour).Unix(), session.ExpiresAt.Unix())
}
