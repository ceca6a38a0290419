package authsdk

import (
	"context"
	"net/http"
)

// Me returns the authenticated user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	var out SessionResponse
	if err := s.call(ctx, http.MethodGet, "/api/v1/session", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout ends the session on the server and clears local credentials, even if
// the server call fails.
func (s *Session) Logout(ctx context.Context) error {
	defer s.store.Clear()
	return s.call(ctx, http.MethodPost, "/api/v1/session/logout", nil, nil, http.StatusNoContent)
}

func (s *Session) TutorialStatus(ctx context.Context) (bool, error) {
	var out TutorialStatus
	if err := s.call(ctx, http.MethodGet, "/api/v1/me/tutorial", nil, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Completed, nil
}

func (s *Session) CompleteTutorial(ctx context.Context) error {
	return s.call(ctx, http.MethodPost, "/api/v1/me/tutorial", nil, nil, http.StatusNoContent)
}
