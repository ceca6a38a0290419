/*
Package authsdk is the Go client for the contentdeck API.

# SDKClient vs Session

  - SDKClient: unauthenticated calls (login, health) and Session creation
  - Session: every authenticated call, with transparent access token refresh

Log in with the ID token issued by the upstream identity provider:

	client := authsdk.NewSDKClient("https://contentdeck.example.com")

	session, user, err := client.Login(ctx, googleIDToken)
	if err != nil {
		return err
	}

	session.OnSessionInvalidated(func(err error) {
		// refresh token rejected: send the user back to login
	})

	items, err := session.ListContents(ctx)

A process that already holds the cookie values can skip Login:

	store := authsdk.NewMemoryCredentialStore(authsdk.Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
	})
	session := client.NewSession(store)

# Token Refresh

Access tokens live for fifteen minutes; refresh tokens for seven days. The
refresh token only changes on login.

Every Session call goes through Session.Send. When a response comes back 401
the session asks its RefreshCoordinator for a fresh access token and replays
the identical request (same method, path, headers and body bytes) exactly
once:

 1. If no refresh is running and the store still holds the access token the
    request used, this caller refreshes.
 2. If a refresh is running, the caller waits for it. It never starts a
    second one.
 3. If the store already holds a newer token, the caller replays straight
    away.

So N goroutines hitting an expired token together cause exactly one call to
the refresh endpoint, and each of the N requests is replayed at most once.

A replay that is still unauthorized returns ErrAuthInvalid. A refresh that the
server rejects clears the credential store, fails every waiting caller with
ErrAuthInvalid and fires OnSessionInvalidated. A refresh that fails for any
other reason (network, 5xx) fails the waiting callers with ErrAuthExpired and
keeps the credentials so a later call can try again.

Requests are values. Send never mutates the Request it is given; the replay
is a copy carrying the retried marker.

# Error Handling

Non-2xx responses are returned as *APIError. Match by status or code:

	_, err := session.EditPost(ctx, id, req)
	switch {
	case errors.Is(err, &authsdk.APIError{StatusCode: http.StatusGone}):
		// the post was deleted on Reddit; the record is unpublished again
	case errors.Is(err, authsdk.ErrAuthInvalid):
		// log in again
	}

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package authsdk
