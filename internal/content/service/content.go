package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/pkg/idx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// MaxTitleLength is Reddit's title limit. Titles are checked on save so a
// record can always be published.
const MaxTitleLength = 300

// NewContent is a generated piece of content to save.
type NewContent struct {
	Title    string
	Prompt   string
	Response string
	Filters  domain.Filters
}

// ContentService is the local CRUD over content records. Locks must be the
// instance the LifecycleService uses.
type ContentService struct {
	Store store.Store
	Locks *RecordLocks
}

func (s *ContentService) Save(ctx context.Context, userID string, in NewContent) (domain.Content, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateTitleBody(in.Title, in.Response); err != nil {
		return domain.Content{}, err
	}

	now := time.Now()
	c := domain.Content{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Title:     in.Title,
		Prompt:    in.Prompt,
		Response:  in.Response,
		Filters:   in.Filters,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Contents().CreateContent(ctx, c); err != nil {
		slogx.FromContext(ctx).Error("failed to save content", slog.Any("error", err))
		return domain.Content{}, err
	}
	return c, nil
}

func (s *ContentService) List(ctx context.Context, userID string) ([]domain.Content, error) {
	return s.Store.Contents().ListContents(ctx, userID)
}

func (s *ContentService) Get(ctx context.Context, userID, id string) (domain.Content, error) {
	c, err := s.Store.Contents().GetContent(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Content{}, ErrContentNotFound
	}
	return c, err
}

// Update edits the local title and body of an unpublished record. Published
// records are edited through the lifecycle so Reddit stays in step. An update
// racing a publish waits for it and then sees the record published.
func (s *ContentService) Update(ctx context.Context, userID, id, title, response string) (domain.Content, error) {
	title = strings.TrimSpace(title)
	if err := validateTitleBody(title, response); err != nil {
		return domain.Content{}, err
	}
	defer s.Locks.Lock(id)()

	var out domain.Content
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Contents().GetContent(ctx, userID, id)
		if err != nil {
			return err
		}
		if c.Published() {
			return ErrAlreadyPublished
		}
		if err := tx.Contents().UpdateContent(ctx, userID, id, title, response, time.Now()); err != nil {
			return err
		}
		out, err = tx.Contents().GetContent(ctx, userID, id)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Content{}, ErrContentNotFound
	}
	return out, err
}

// Delete removes the local record. A post already on Reddit is left there.
func (s *ContentService) Delete(ctx context.Context, userID, id string) error {
	defer s.Locks.Lock(id)()
	err := s.Store.Contents().DeleteContent(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrContentNotFound
	}
	return err
}

// ToggleFavourite flips the favourite flag and returns the new value.
func (s *ContentService) ToggleFavourite(ctx context.Context, userID, id string) (bool, error) {
	var fav bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Contents().GetContent(ctx, userID, id)
		if err != nil {
			return err
		}
		fav = !c.IsFavourite
		return tx.Contents().SetFavourite(ctx, userID, id, fav)
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, ErrContentNotFound
	}
	return fav, err
}

// Favourites returns the favourite records and the saved filter presets.
func (s *ContentService) Favourites(ctx context.Context, userID string) ([]domain.Content, []domain.FilterPreset, error) {
	favs, err := s.Store.Contents().ListFavourites(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	filters, err := s.Store.Filters().ListFilters(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return favs, filters, nil
}

func validateTitleBody(title, response string) error {
	switch {
	case title == "":
		return validationError("title is required")
	case len([]rune(title)) > MaxTitleLength:
		return validationError("title must be at most 300 characters")
	case strings.TrimSpace(response) == "":
		return validationError("response is required")
	}
	return nil
}
