package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/internal/content/store/drivers/sqlite"
	"github.com/aussiebroadwan/contentdeck/pkg/cryptox"
	"github.com/aussiebroadwan/contentdeck/pkg/idx"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit/reddittest"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// harness wires the services against an in-memory database and a fake
// Reddit.
type harness struct {
	store     *sqlite.Store
	reddit    *reddittest.Server
	api       *reddit.Client
	links     *service.LinkService
	locks     *service.RecordLocks
	lifecycle *service.LifecycleService
	contents  *service.ContentService
	filters   *service.FilterService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	srv := reddittest.NewServer()
	t.Cleanup(srv.Close)

	sealer, err := cryptox.NewSealer([]byte("0123456789abcdef0123456789abcdef"), "reddit-refresh-token")
	require.NoError(t, err)

	api := reddit.New(srv.Config())
	links := &service.LinkService{Store: st, Reddit: api, Sealer: sealer}
	locks := &service.RecordLocks{}

	return &harness{
		store:     st,
		reddit:    srv,
		api:       api,
		links:     links,
		locks:     locks,
		lifecycle: &service.LifecycleService{Store: st, Links: links, Reddit: api, Locks: locks},
		contents:  &service.ContentService{Store: st, Locks: locks},
		filters:   &service.FilterService{Store: st},
	}
}

func (h *harness) user(t *testing.T, subject string) domain.User {
	t.Helper()
	now := time.Now()
	u := domain.User{
		ID:          idx.New().String(),
		Subject:     subject,
		Email:       subject + "@example.com",
		Name:        subject,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastLoginAt: now,
	}
	require.NoError(t, h.store.Users().CreateUser(context.Background(), u))
	return u
}

// link connects the user to a fake Reddit account called username.
func (h *harness) link(t *testing.T, userID, username string) {
	t.Helper()
	code := "code-" + username
	h.reddit.AddCode(code, username)
	_, already, err := h.links.Link(context.Background(), userID, code)
	require.NoError(t, err)
	require.False(t, already)
}

func (h *harness) content(t *testing.T, userID, title, response string) domain.Content {
	t.Helper()
	c, err := h.contents.Save(context.Background(), userID, service.NewContent{
		Title:    title,
		Prompt:   "prompt for " + title,
		Response: response,
		Filters:  domain.Filters{ContentType: "post", Tone: "friendly"},
	})
	require.NoError(t, err)
	return c
}

func (h *harness) reload(t *testing.T, userID, id string) domain.Content {
	t.Helper()
	c, err := h.contents.Get(context.Background(), userID, id)
	require.NoError(t, err)
	return c
}

// publishedUser returns a linked user with one published record.
func (h *harness) publishedUser(t *testing.T, name string) (domain.User, domain.Content) {
	t.Helper()
	u := h.user(t, name)
	h.link(t, u.ID, name)
	c := h.content(t, u.ID, "T", "B")
	c, err := h.lifecycle.Publish(context.Background(), u.ID, c.ID)
	require.NoError(t, err)
	return u, c
}

func testContext() context.Context {
	return slogx.WithContext(context.Background(), slogx.Discard())
}
