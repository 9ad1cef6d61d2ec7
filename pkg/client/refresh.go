// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/uptimelabs/go-identity/pkg/logging"
	"github.com/uptimelabs/go-identity/pkg/metrics"
	"github.com/uptimelabs/go-identity/pkg/tokenstore"
)

type refreshState int

const (
	stateIdle refreshState = iota
	stateRefreshing
)

type refreshResult struct {
	token string
	err   error
}

// refreshCoordinator serializes access token refreshes. At most one
// refresh call is in flight per client; callers arriving while one is
// running enqueue and receive its outcome in arrival order.
type refreshCoordinator struct {
	mu      sync.Mutex
	state   refreshState
	waiters []chan refreshResult

	run              func(ctx context.Context) (string, error)
	store            tokenstore.Store
	timeout          time.Duration
	onSessionExpired func()
	logger           *logging.Logger
}

// Refresh returns a freshly issued access token. The first caller in an
// idle cycle performs the refresh; every caller that arrives before it
// completes shares its outcome. A caller whose context ends while
// waiting abandons the wait without disturbing the shared cycle.
func (rc *refreshCoordinator) Refresh(ctx context.Context) (string, error) {
	rc.mu.Lock()
	if rc.state == stateRefreshing {
		ch := make(chan refreshResult, 1)
		rc.waiters = append(rc.waiters, ch)
		rc.mu.Unlock()

		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	rc.state = stateRefreshing
	rc.mu.Unlock()

	token, err := rc.execute(ctx)

	rc.mu.Lock()
	waiters := rc.waiters
	rc.waiters = nil
	rc.state = stateIdle
	rc.mu.Unlock()

	// Buffered channels, so delivery is in arrival order and never blocks
	// on a caller that already gave up.
	res := refreshResult{token: token, err: err}
	for _, ch := range waiters {
		ch <- res
	}

	return token, err
}

// execute runs the refresh call and settles the token store. The outcome
// is shared with every queued caller, so the call runs on its own
// deadline rather than the leader's context.
func (rc *refreshCoordinator) execute(ctx context.Context) (string, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rc.timeout)
	defer cancel()

	token, err := rc.run(rctx)
	if err != nil {
		metrics.RecordRefresh(false)
		rc.logger.Error(fmt.Errorf("token refresh failed: %w", err))

		if clearErr := rc.store.Clear(); clearErr != nil {
			rc.logger.Errorf("failed to clear token store: %v", clearErr)
		}
		if rc.onSessionExpired != nil {
			rc.onSessionExpired()
		}
		return "", NewError("refresh token", fmt.Errorf("%w: %v", ErrRefreshFailed, err))
	}

	if err := rc.store.Set(token); err != nil {
		rc.logger.Errorf("failed to store refreshed token: %v", err)
	}
	metrics.RecordRefresh(true)
	rc.logger.Debug("access token refreshed")

	return token, nil
}
