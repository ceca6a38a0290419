package authsdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// RefreshFunc exchanges a refresh token for a new access token.
type RefreshFunc func(ctx context.Context, refreshToken string) (accessToken string, err error)

// RefreshCoordinator makes sure only one refresh runs at a time for a
// credential store. Callers that see a 401 while a refresh is running wait for
// that refresh instead of starting their own.
type RefreshCoordinator struct {
	store   CredentialStore
	refresh RefreshFunc
	logger  *slog.Logger

	mu            sync.Mutex
	inFlight      bool
	waiters       []chan error
	onInvalidated func(error)
}

func NewRefreshCoordinator(store CredentialStore, refresh RefreshFunc, logger *slog.Logger) *RefreshCoordinator {
	if logger == nil {
		logger = slogx.Discard()
	}
	return &RefreshCoordinator{store: store, refresh: refresh, logger: logger}
}

// OnSessionInvalidated registers fn to run once per failed refresh that
// cleared the session, after every waiter has been released. It may be
// called while requests are in flight.
func (c *RefreshCoordinator) OnSessionInvalidated(fn func(error)) {
	c.mu.Lock()
	c.onInvalidated = fn
	c.mu.Unlock()
}

// EnsureValidCredential is called after a request made with staleAccess came
// back 401. A nil return means the store now holds a different access token
// and the request should be replayed.
//
//   - No refresh running and the store still holds staleAccess: this caller
//     runs the refresh and releases everyone queued behind it.
//   - A refresh is running: wait for it and share its result.
//   - The store already holds a newer token: return nil straight away.
//
// A rejected refresh token clears the store and returns ErrAuthInvalid to
// every waiter. A refresh that fails for any other reason keeps the
// credentials, returns an error wrapping ErrAuthExpired, and lets a later call
// try again.
func (c *RefreshCoordinator) EnsureValidCredential(ctx context.Context, staleAccess string) error {
	c.mu.Lock()
	if c.inFlight {
		done := make(chan error, 1)
		c.waiters = append(c.waiters, done)
		c.mu.Unlock()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	creds := c.store.Load()
	if creds.RefreshToken == "" {
		c.mu.Unlock()
		return ErrAuthInvalid
	}
	if creds.AccessToken != staleAccess {
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	c.mu.Unlock()

	// The refresh outlives the leader's context so one cancelled caller
	// cannot fail everyone queued behind it.
	err := c.run(context.WithoutCancel(ctx), creds.RefreshToken)

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.inFlight = false
	hook := c.onInvalidated
	c.mu.Unlock()

	for _, w := range waiters {
		w <- err
	}

	if errors.Is(err, ErrAuthInvalid) && hook != nil {
		hook(err)
	}
	return err
}

func (c *RefreshCoordinator) run(ctx context.Context, refreshToken string) error {
	access, err := c.refresh(ctx, refreshToken)
	if err == nil && access == "" {
		err = fmt.Errorf("%w: refresh response carried no access token", ErrAuthInvalid)
	}
	if err == nil {
		c.store.SetAccess(access)
		c.logger.Debug("session refreshed")
		return nil
	}

	if refreshRejected(err) {
		c.store.Clear()
		c.logger.Warn("session refresh rejected, credentials cleared", "err", err)
		return fmt.Errorf("%w: %v", ErrAuthInvalid, err)
	}

	c.logger.Warn("session refresh failed", "err", err)
	return fmt.Errorf("%w: %v", ErrAuthExpired, err)
}

// refreshRejected reports whether the server refused the refresh token
// itself, as opposed to the call failing.
func refreshRejected(err error) bool {
	if errors.Is(err, ErrAuthInvalid) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
	}
	return false
}
