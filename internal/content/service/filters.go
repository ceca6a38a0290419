package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/pkg/idx"
)

type FilterService struct {
	Store store.Store
}

// Save stores a filter preset. Titles are unique per user.
func (s *FilterService) Save(ctx context.Context, userID, title string, filters domain.Filters) (domain.FilterPreset, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.FilterPreset{}, validationError("title is required")
	}

	now := time.Now()
	f := domain.FilterPreset{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Title:     title,
		Filters:   filters,
		CreatedAt: now,
	}
	if err := s.Store.Filters().CreateFilter(ctx, f); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.FilterPreset{}, ErrFilterExists
		}
		return domain.FilterPreset{}, err
	}
	return f, nil
}

func (s *FilterService) List(ctx context.Context, userID string) ([]domain.FilterPreset, error) {
	return s.Store.Filters().ListFilters(ctx, userID)
}

func (s *FilterService) Delete(ctx context.Context, userID, id string) error {
	err := s.Store.Filters().DeleteFilter(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrFilterNotFound
	}
	return err
}
