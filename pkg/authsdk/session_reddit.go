package authsdk

import (
	"context"
	"net/http"
)

// RedditAuthURL returns the consent URL to send the user to.
func (s *Session) RedditAuthURL(ctx context.Context) (*RedditAuthURLResponse, error) {
	var out RedditAuthURLResponse
	if err := s.call(ctx, http.MethodGet, "/api/v1/reddit/auth-url", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RedditLinkStatus(ctx context.Context) (*RedditLinkStatus, error) {
	var out RedditLinkStatus
	if err := s.call(ctx, http.MethodGet, "/api/v1/reddit/link", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkReddit completes the authorization-code flow. Linking an account that
// is already linked succeeds without contacting Reddit.
func (s *Session) LinkReddit(ctx context.Context, code string) (*RedditLinkStatus, error) {
	var out RedditLinkStatus
	if err := s.call(ctx, http.MethodPost, "/api/v1/reddit/link", RedditLinkRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UnlinkReddit(ctx context.Context) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/reddit/link", nil, nil, http.StatusNoContent)
}

// Publish posts the content to the user's profile subreddit.
func (s *Session) Publish(ctx context.Context, contentID string) (*Content, error) {
	var out Content
	if err := s.call(ctx, http.MethodPost, contentPath(contentID)+"/reddit", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditPost edits the published post's body and the local title and body.
func (s *Session) EditPost(ctx context.Context, contentID string, req UpdateContentRequest) (*Content, error) {
	var out Content
	if err := s.call(ctx, http.MethodPut, contentPath(contentID)+"/reddit", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes the post from Reddit. The local record is kept.
func (s *Session) DeletePost(ctx context.Context, contentID string) error {
	return s.call(ctx, http.MethodDelete, contentPath(contentID)+"/reddit", nil, nil, http.StatusNoContent)
}

// FetchPost pulls the latest post body from Reddit into the local record.
func (s *Session) FetchPost(ctx context.Context, contentID string) (*FetchPostResponse, error) {
	var out FetchPostResponse
	if err := s.call(ctx, http.MethodGet, contentPath(contentID)+"/reddit", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SweepMetrics runs a metrics reconciliation pass now.
func (s *Session) SweepMetrics(ctx context.Context) (*SweepReport, error) {
	var out SweepReport
	if err := s.call(ctx, http.MethodPost, "/api/v1/reddit/metrics/sweep", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
