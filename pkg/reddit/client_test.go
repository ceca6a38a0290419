package reddit_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit/reddittest"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*reddit.Client, *reddittest.Server) {
	t.Helper()
	srv := reddittest.NewServer()
	t.Cleanup(srv.Close)
	return reddit.New(srv.Config()), srv
}

func TestAuthCodeURL(t *testing.T) {
	c, _ := newClient(t)

	u, err := url.Parse(c.AuthCodeURL("state-123"))
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, reddittest.ClientID, q.Get("client_id"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "permanent", q.Get("duration"))
	require.Equal(t, "identity submit read edit history", q.Get("scope"))
}

func TestExchangeCode(t *testing.T) {
	c, srv := newClient(t)
	srv.AddCode("good-code", "alice")

	rt, err := c.ExchangeCode(context.Background(), "good-code")
	require.NoError(t, err)
	require.NotEmpty(t, rt)

	_, err = c.ExchangeCode(context.Background(), "bad-code")
	require.ErrorIs(t, err, reddit.ErrUnauthorized)
}

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	rt := srv.AddAccount("alice")

	me, err := c.Me(ctx, rt)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Name)

	name, err := c.Submit(ctx, rt, reddit.Submission{
		Subreddit: reddit.ProfileSubreddit(me.Name),
		Title:     "Hello",
		Text:      "first body",
	})
	require.NoError(t, err)
	require.Equal(t, "t3_p1", name)

	post, err := c.Post(ctx, rt, name)
	require.NoError(t, err)
	require.Equal(t, "Hello", post.Title)
	require.Equal(t, "first body", post.Body)
	require.Equal(t, "alice", post.Author)
	require.False(t, post.Deleted())

	require.NoError(t, c.EditText(ctx, rt, name, "second body"))
	post, err = c.Post(ctx, rt, name)
	require.NoError(t, err)
	require.Equal(t, "second body", post.Body)

	require.NoError(t, c.Delete(ctx, rt, name))
	post, err = c.Post(ctx, rt, name)
	require.NoError(t, err)
	require.True(t, post.Deleted())

	// The access token is reused across calls.
	require.Equal(t, 1, srv.Calls("/api/v1/access_token"))
}

func TestSubmitErrors(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	rt := srv.AddAccount("alice")

	t.Run("api error envelope", func(t *testing.T) {
		_, err := c.Submit(ctx, rt, reddit.Submission{Subreddit: "u_bob", Title: "x", Text: "y"})
		var apiErr *reddit.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Contains(t, apiErr.Message, "SUBREDDIT_NOTALLOWED")
	})

	t.Run("server error", func(t *testing.T) {
		srv.FailNext("/api/submit", http.StatusServiceUnavailable)
		_, err := c.Submit(ctx, rt, reddit.Submission{Subreddit: "u_alice", Title: "x", Text: "y"})
		require.ErrorIs(t, err, reddit.ErrUnavailable)
	})
}

func TestPostNotFound(t *testing.T) {
	c, srv := newClient(t)
	rt := srv.AddAccount("alice")

	_, err := c.Post(context.Background(), rt, "t3_missing")
	require.ErrorIs(t, err, reddit.ErrNotFound)
}

func TestRevokedRefreshToken(t *testing.T) {
	c, srv := newClient(t)
	rt := srv.AddAccount("alice")
	srv.RevokeAccount("alice")

	_, err := c.Me(context.Background(), rt)
	require.ErrorIs(t, err, reddit.ErrUnauthorized)
}

func TestEditForbidden(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	rt := srv.AddAccount("alice")
	srv.PutPost(reddit.Post{Fullname: "t3_other", ID: "other", Author: "bob", Body: "b"})

	err := c.EditText(ctx, rt, "t3_other", "hijack")
	require.ErrorIs(t, err, reddit.ErrForbidden)
}

func TestFullname(t *testing.T) {
	require.Equal(t, "t3_abc", reddit.Fullname("abc"))
	require.Equal(t, "t3_abc", reddit.Fullname("t3_abc"))
	require.Equal(t, "u_alice", reddit.ProfileSubreddit("alice"))
}
