package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// FetchResult is the outcome of pulling the latest remote state.
type FetchResult struct {
	Title    string // remote title, never written locally
	Response string
	Updated  bool // the local body was overwritten
	Content  domain.Content
}

// LifecycleService drives a content record through publish, edit, delete and
// fetch against Reddit. Every operation on a record holds that record's lock,
// so two publishes of the same record cannot both reach Reddit. Locks must be
// the instance the ContentService uses.
type LifecycleService struct {
	Store  store.Store
	Links  *LinkService
	Reddit RedditAPI
	Locks  *RecordLocks
}

// Publish submits the record to the user's profile subreddit.
func (s *LifecycleService) Publish(ctx context.Context, userID, id string) (domain.Content, error) {
	defer s.Locks.Lock(id)()
	l := slogx.FromContext(ctx).With(slog.String("content_id", id))

	c, err := s.get(ctx, userID, id)
	if err != nil {
		return domain.Content{}, err
	}
	if c.Published() {
		return domain.Content{}, ErrAlreadyPublished
	}

	cred, err := s.Links.Credential(ctx, userID)
	if err != nil {
		return domain.Content{}, err
	}

	postID, err := s.Reddit.Submit(ctx, cred.RefreshToken, reddit.Submission{
		Subreddit: reddit.ProfileSubreddit(cred.Username),
		Title:     c.Title,
		Text:      c.Response,
	})
	if err != nil {
		l.Warn("reddit submit failed", slog.Any("error", err))
		return domain.Content{}, remoteError("submit", err)
	}

	now := time.Now()
	pub := domain.Publication{RemotePostID: postID, LastSyncedAt: now}
	if err := s.Store.Contents().SetPublication(ctx, c.ID, pub, now); err != nil {
		// The post exists on Reddit but not locally. Log enough to reconcile by hand.
		l.Error("failed to store publication", slog.String("post_id", postID), slog.Any("error", err))
		return domain.Content{}, err
	}

	l.Info("content published", slog.String("post_id", postID))
	return s.get(ctx, userID, id)
}

// Edit replaces the post body on Reddit, then the local title and body.
// Reddit titles are immutable, so the new title is local only.
func (s *LifecycleService) Edit(ctx context.Context, userID, id, title, response string) (domain.Content, error) {
	title = strings.TrimSpace(title)
	if err := validateTitleBody(title, response); err != nil {
		return domain.Content{}, err
	}

	defer s.Locks.Lock(id)()
	l := slogx.FromContext(ctx).With(slog.String("content_id", id))

	c, cred, check, err := s.prepare(ctx, userID, id)
	if err != nil {
		return domain.Content{}, err
	}
	if err := authoredBy(check.post, cred); err != nil {
		return domain.Content{}, err
	}

	postID := c.Publication.RemotePostID
	if err := s.Reddit.EditText(ctx, cred.RefreshToken, postID, response); err != nil {
		l.Warn("reddit edit failed", slog.Any("error", err))
		if errors.Is(err, reddit.ErrNotFound) {
			if cerr := s.clearGone(ctx, c.ID, postID); cerr != nil {
				return domain.Content{}, cerr
			}
		}
		return domain.Content{}, remoteError("edit", err)
	}

	if err := s.Store.Contents().RecordEdit(ctx, c.ID, postID, title, response, time.Now()); err != nil {
		return domain.Content{}, err
	}

	l.Info("reddit post edited", slog.String("post_id", postID))
	return s.get(ctx, userID, id)
}

// Delete removes the post from Reddit and unpublishes the record. The local
// record itself is kept.
func (s *LifecycleService) Delete(ctx context.Context, userID, id string) error {
	defer s.Locks.Lock(id)()
	l := slogx.FromContext(ctx).With(slog.String("content_id", id))

	c, cred, check, err := s.prepare(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := authoredBy(check.post, cred); err != nil {
		return err
	}

	postID := c.Publication.RemotePostID
	if err := s.Reddit.Delete(ctx, cred.RefreshToken, postID); err != nil {
		l.Warn("reddit delete failed", slog.Any("error", err))
		if errors.Is(err, reddit.ErrNotFound) {
			if cerr := s.clearGone(ctx, c.ID, postID); cerr != nil {
				return cerr
			}
		}
		return remoteError("delete", err)
	}

	if _, err := s.Store.Contents().ClearPublication(ctx, c.ID, postID, time.Now()); err != nil {
		return err
	}

	l.Info("reddit post deleted", slog.String("post_id", postID))
	return nil
}

// FetchLatest pulls the post from Reddit. When the remote body differs the
// local body is overwritten; the local title never is.
func (s *LifecycleService) FetchLatest(ctx context.Context, userID, id string) (FetchResult, error) {
	defer s.Locks.Lock(id)()

	c, _, check, err := s.prepare(ctx, userID, id)
	if err != nil {
		return FetchResult{}, err
	}

	res := FetchResult{Title: check.post.Title, Response: check.post.Body}
	if check.post.Body != c.Response {
		if err := s.Store.Contents().SyncResponse(ctx, c.ID, c.Publication.RemotePostID, check.post.Body, time.Now()); err != nil {
			return FetchResult{}, err
		}
		res.Updated = true
		slogx.FromContext(ctx).Info("local content updated from reddit",
			slog.String("content_id", id),
			slog.String("post_id", c.Publication.RemotePostID),
		)
	}

	res.Content, err = s.get(ctx, userID, id)
	return res, err
}

// MarkGone unpublishes a record whose post was deleted on Reddit, provided it
// is still published as postID.
func (s *LifecycleService) MarkGone(ctx context.Context, id, postID string) error {
	defer s.Locks.Lock(id)()
	return s.clearGone(ctx, id, postID)
}

// prepare loads a published record and checks its post. A post found gone is
// unpublished here and reported as ErrRemoteGone.
func (s *LifecycleService) prepare(ctx context.Context, userID, id string) (domain.Content, LinkedCredential, remoteCheck, error) {
	c, err := s.get(ctx, userID, id)
	if err != nil {
		return domain.Content{}, LinkedCredential{}, remoteCheck{}, err
	}
	if !c.Published() {
		return domain.Content{}, LinkedCredential{}, remoteCheck{}, ErrNotPublished
	}

	cred, err := s.Links.Credential(ctx, userID)
	if err != nil {
		return domain.Content{}, LinkedCredential{}, remoteCheck{}, err
	}

	check, err := checkRemote(ctx, s.Reddit, cred.RefreshToken, c.Publication.RemotePostID)
	if err != nil {
		return domain.Content{}, LinkedCredential{}, remoteCheck{}, err
	}
	if check.status == postGone {
		if err := s.clearGone(ctx, c.ID, c.Publication.RemotePostID); err != nil {
			return domain.Content{}, LinkedCredential{}, remoteCheck{}, err
		}
		return domain.Content{}, LinkedCredential{}, remoteCheck{}, ErrRemoteGone
	}
	return c, cred, check, nil
}

func (s *LifecycleService) clearGone(ctx context.Context, id, postID string) error {
	changed, err := s.Store.Contents().ClearPublication(ctx, id, postID, time.Now())
	if err != nil {
		return err
	}
	if changed {
		slogx.FromContext(ctx).Info("reddit post gone, record unpublished",
			slog.String("content_id", id),
			slog.String("post_id", postID),
		)
	}
	return nil
}

func (s *LifecycleService) get(ctx context.Context, userID, id string) (domain.Content, error) {
	c, err := s.Store.Contents().GetContent(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Content{}, ErrContentNotFound
	}
	return c, err
}

func authoredBy(p reddit.Post, cred LinkedCredential) error {
	if !strings.EqualFold(p.Author, cred.Username) {
		return ErrRemoteForbidden
	}
	return nil
}

type remoteStatus int

const (
	postLive remoteStatus = iota
	postGone
)

// remoteCheck is the result of looking a post up on Reddit. post is only
// meaningful when status is postLive.
type remoteCheck struct {
	status remoteStatus
	post   reddit.Post
}

// checkRemote is the single tombstone test. A post is gone when Reddit no
// longer lists it or lists it with the deleted author marker.
func checkRemote(ctx context.Context, api RedditAPI, refreshToken, postID string) (remoteCheck, error) {
	post, err := api.Post(ctx, refreshToken, postID)
	switch {
	case errors.Is(err, reddit.ErrNotFound):
		return remoteCheck{status: postGone}, nil
	case err != nil:
		return remoteCheck{}, remoteError("fetch post", err)
	case post.Deleted():
		return remoteCheck{status: postGone}, nil
	}
	return remoteCheck{status: postLive, post: post}, nil
}
