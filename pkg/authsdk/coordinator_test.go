package authsdk_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCoordinatorSingleRefreshForConcurrentCallers(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{AccessToken: "stale", RefreshToken: "rt"})

	var calls atomic.Int32
	release := make(chan struct{})
	coord := authsdk.NewRefreshCoordinator(store, func(ctx context.Context, rt string) (string, error) {
		calls.Add(1)
		<-release
		return "fresh", nil
	}, nil)

	const n = 16
	var g errgroup.Group
	for range n {
		g.Go(func() error {
			return coord.EnsureValidCredential(context.Background(), "stale")
		})
	}

	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, calls.Load())
	require.Equal(t, "fresh", store.Load().AccessToken)
	require.Equal(t, "rt", store.Load().RefreshToken, "refresh token does not rotate")
}

func TestCoordinatorAlreadyRefreshed(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{AccessToken: "newer", RefreshToken: "rt"})

	coord := authsdk.NewRefreshCoordinator(store, func(context.Context, string) (string, error) {
		t.Fatal("refresh must not run when the token already changed")
		return "", nil
	}, nil)

	require.NoError(t, coord.EnsureValidCredential(context.Background(), "older"))
}

func TestCoordinatorRejectedRefreshClearsSession(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{AccessToken: "stale", RefreshToken: "rt"})

	release := make(chan struct{})
	coord := authsdk.NewRefreshCoordinator(store, func(context.Context, string) (string, error) {
		<-release
		return "", &authsdk.APIError{StatusCode: 401, Code: authsdk.CodeUnauthorized}
	}, nil)

	var hooks atomic.Int32
	var hookErr atomic.Value
	coord.OnSessionInvalidated(func(err error) {
		hookErr.Store(err)
		hooks.Add(1)
	})

	const n = 8
	errs := make([]error, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			errs[i] = coord.EnsureValidCredential(context.Background(), "stale")
			return nil
		})
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, g.Wait())

	for i, err := range errs {
		// Late arrivals find an empty store, which is also terminal.
		require.ErrorIs(t, err, authsdk.ErrAuthInvalid, "caller %d", i)
	}
	require.EqualValues(t, 1, hooks.Load())
	require.ErrorIs(t, hookErr.Load().(error), authsdk.ErrAuthInvalid)
	require.False(t, store.Load().Valid())
}

func TestCoordinatorHookRegisteredDuringRefresh(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{AccessToken: "stale", RefreshToken: "rt"})

	started := make(chan struct{})
	release := make(chan struct{})
	coord := authsdk.NewRefreshCoordinator(store, func(context.Context, string) (string, error) {
		close(started)
		<-release
		return "", &authsdk.APIError{StatusCode: 401, Code: authsdk.CodeUnauthorized}
	}, nil)

	done := make(chan error, 1)
	go func() { done <- coord.EnsureValidCredential(context.Background(), "stale") }()
	<-started

	var hooks atomic.Int32
	coord.OnSessionInvalidated(func(error) { hooks.Add(1) })
	close(release)

	require.ErrorIs(t, <-done, authsdk.ErrAuthInvalid)
	require.EqualValues(t, 1, hooks.Load(), "a hook registered mid-refresh must see that refresh fail")
}

func TestCoordinatorTransientFailureKeepsSession(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{AccessToken: "stale", RefreshToken: "rt"})

	var calls atomic.Int32
	coord := authsdk.NewRefreshCoordinator(store, func(context.Context, string) (string, error) {
		if calls.Add(1) == 1 {
			return "", fmt.Errorf("dial tcp: connection refused")
		}
		return "fresh", nil
	}, nil)
	coord.OnSessionInvalidated(func(error) { t.Fatal("transient failures must not invalidate the session") })

	err := coord.EnsureValidCredential(context.Background(), "stale")
	require.ErrorIs(t, err, authsdk.ErrAuthExpired)
	require.False(t, errors.Is(err, authsdk.ErrAuthInvalid))
	require.Equal(t, "stale", store.Load().AccessToken)

	// The coordinator reset, so the next caller can try again.
	require.NoError(t, coord.EnsureValidCredential(context.Background(), "stale"))
	require.Equal(t, "fresh", store.Load().AccessToken)
	require.EqualValues(t, 2, calls.Load())
}

func TestCoordinatorLeaderCancellationDoesNotAbortRefresh(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{AccessToken: "stale", RefreshToken: "rt"})

	started := make(chan struct{})
	coord := authsdk.NewRefreshCoordinator(store, func(ctx context.Context, _ string) (string, error) {
		close(started)
		time.Sleep(30 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "fresh", nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- coord.EnsureValidCredential(ctx, "stale") }()

	<-started
	cancel()

	require.NoError(t, <-done)
	require.Equal(t, "fresh", store.Load().AccessToken)
}

func TestCoordinatorNoRefreshToken(t *testing.T) {
	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{})
	coord := authsdk.NewRefreshCoordinator(store, func(context.Context, string) (string, error) {
		t.Fatal("refresh must not run without a refresh token")
		return "", nil
	}, nil)

	require.ErrorIs(t, coord.EnsureValidCredential(context.Background(), ""), authsdk.ErrAuthInvalid)
}
