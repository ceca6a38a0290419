package authsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Session is an authenticated client. Every call goes through Send, which
// recovers from an expired access token by refreshing once and replaying the
// request.
type Session struct {
	client *SDKClient
	store  CredentialStore
	coord  *RefreshCoordinator
}

// OnSessionInvalidated registers fn to run when a refresh is rejected and the
// session is cleared. Use it to send the user back to the login screen.
func (s *Session) OnSessionInvalidated(fn func(error)) {
	s.coord.OnSessionInvalidated(fn)
}

// Credentials returns a snapshot of the current session pair.
func (s *Session) Credentials() Credentials {
	return s.store.Load()
}

// Send issues req with the current access token. On a 401 it waits for the
// refresh coordinator and replays the identical request once. A replay that
// is still unauthorized fails with ErrAuthInvalid. Every other response,
// including error statuses, is returned to the caller unchanged.
func (s *Session) Send(ctx context.Context, req Request) (*http.Response, error) {
	access := s.store.Load().AccessToken
	if access == "" {
		return nil, ErrAuthInvalid
	}

	resp, err := s.attempt(ctx, req, access)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	discard(resp)

	if req.Retried() {
		return nil, fmt.Errorf("%w: unauthorized after refresh", ErrAuthInvalid)
	}

	if err := s.coord.EnsureValidCredential(ctx, access); err != nil {
		return nil, err
	}

	replay := req.retry()
	access = s.store.Load().AccessToken
	if access == "" {
		return nil, ErrAuthInvalid
	}

	resp, err = s.attempt(ctx, replay, access)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	discard(resp)
	return nil, fmt.Errorf("%w: unauthorized after refresh", ErrAuthInvalid)
}

func (s *Session) attempt(ctx context.Context, req Request, access string) (*http.Response, error) {
	hr, err := req.build(ctx, s.client.BaseURL)
	if err != nil {
		return nil, err
	}
	hr.Header.Set("Authorization", "Bearer "+access)
	hr.AddCookie(&http.Cookie{Name: AccessCookie, Value: access})

	resp, err := s.client.HTTPClient.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("authsdk: %s %s: %w", req.Method, req.Path, err)
	}
	return resp, nil
}

// call sends a JSON request and decodes the response into out.
func (s *Session) call(ctx context.Context, method, path string, in, out any, expect int) error {
	var (
		req Request
		err error
	)
	if in != nil {
		req, err = NewJSONRequest(method, path, in)
		if err != nil {
			return err
		}
	} else {
		req = NewRequest(method, path, nil)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Send(ctx, req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expect)
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
