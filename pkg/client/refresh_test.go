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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptimelabs/go-identity/pkg/logging"
	"github.com/uptimelabs/go-identity/pkg/tokenstore"
)

// refreshFixture is a test server whose protected endpoint rejects every
// bearer token except "fresh". The refresh endpoint blocks until all
// expected callers have been rejected once, so every caller lands in the
// same refresh cycle.
type refreshFixture struct {
	mux          *http.ServeMux
	refreshCalls int32
	staleHits    int32
	allStale     chan struct{}
	expect       int32
}

func newRefreshFixture(expect int, refresh http.HandlerFunc) *refreshFixture {
	f := &refreshFixture{
		mux:      http.NewServeMux(),
		allStale: make(chan struct{}),
		expect:   int32(expect),
	}

	f.mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer fresh" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"email":"user@example.com"}}`))
			return
		}
		if atomic.AddInt32(&f.staleHits, 1) == f.expect {
			close(f.allStale)
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	f.mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.refreshCalls, 1)
		<-f.allStale
		refresh(w, r)
	})

	return f
}

func TestRefresh_SingleFlightUnderConcurrentUnauthorized(t *testing.T) {
	const callers = 8

	f := newRefreshFixture(callers, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"accessToken":"fresh"}}`))
	})

	srv := httptest.NewServer(f.mux)
	defer srv.Close()

	store := tokenstore.NewMemory()
	require.NoError(t, store.Set("stale"))

	c, err := New(&Params{
		Config:     &Config{Address: srv.URL},
		TokenStore: store,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, callers)
	statuses := make([]int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/api/user"})
			results[i] = err
			if err == nil {
				statuses[i] = resp.StatusCode
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, results[i])
		assert.Equal(t, http.StatusOK, statuses[i], "every caller is replayed after the shared refresh")
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.refreshCalls), "concurrent 401s share one refresh")

	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh", token)
}

func TestRefresh_FailureFansOutAndTearsDownSession(t *testing.T) {
	const callers = 5

	f := newRefreshFixture(callers, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(f.mux)
	defer srv.Close()

	store := tokenstore.NewMemory()
	require.NoError(t, store.Set("stale"))

	var expiredNotices int32
	c, err := New(&Params{
		Config:     &Config{Address: srv.URL},
		TokenStore: store,
		OnSessionExpired: func() {
			atomic.AddInt32(&expiredNotices, 1)
		},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/api/user"})
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.ErrorIs(t, results[i], ErrRefreshFailed, "caller %d shares the refresh failure", i)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.refreshCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&expiredNotices), "session teardown fires once per failed cycle")

	_, ok := store.Get()
	assert.False(t, ok, "failed refresh clears the stored token")
}

func TestRefresh_SecondUnauthorizedExpiresSession(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		// Reject even the replayed call carrying the fresh token.
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"accessToken":"fresh"}}`))
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("stale"))

	_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/api/user"})
	assert.ErrorIs(t, err, ErrAuthenticationExpired)
	assert.True(t, IsAuthenticationExpired(err))

	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "a call is replayed at most once")
}

func TestRefresh_SkipAuthCallsNeverEnqueue(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"SUCCESS","data":{"accessToken":"fresh"}}`))
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	resp, err := c.Do(context.Background(), &Request{
		Method:          http.MethodPost,
		Path:            "/auth/logout",
		SkipAuthRefresh: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "skip-auth 401 passes through untouched")
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
}

func TestRefresh_WaiterHonorsContextCancellation(t *testing.T) {
	release := make(chan struct{})

	started := make(chan struct{})
	rc := &refreshCoordinator{
		run: func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "fresh", nil
		},
		store:   tokenstore.NewMemory(),
		timeout: DefaultRefreshTimeout,
		logger:  logging.Nop(),
	}

	leaderDone := make(chan error, 1)
	go func() {
		_, err := rc.Refresh(context.Background())
		leaderDone <- err
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	waiterDone := make(chan error, 1)
	go func() {
		_, err := rc.Refresh(ctx)
		waiterDone <- err
	}()

	cancel()
	err := <-waiterDone
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	require.NoError(t, <-leaderDone)
}
