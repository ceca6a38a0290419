package http

import (
	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
)

func toUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		TutorialCompleted: u.TutorialCompleted,
		CreatedAt:         u.CreatedAt,
		LastLoginAt:       u.LastLoginAt,
	}
}

func toFilters(f domain.Filters) authsdk.Filters {
	return authsdk.Filters(f)
}

func fromFilters(f authsdk.Filters) domain.Filters {
	return domain.Filters(f)
}

func toContent(c domain.Content) authsdk.Content {
	out := authsdk.Content{
		ID:              c.ID,
		Title:           c.Title,
		Prompt:          c.Prompt,
		Response:        c.Response,
		Filters:         toFilters(c.Filters),
		IsFavourite:     c.IsFavourite,
		State:           string(c.State()),
		RemoteDeletedAt: c.RemoteDeletedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if p := c.Publication; p != nil {
		out.Reddit = &authsdk.Publication{
			PostID:          p.RemotePostID,
			Upvotes:         p.Upvotes,
			Comments:        p.Comments,
			LastSyncedAt:    p.LastSyncedAt,
			EditedAt:        p.EditedAt,
			MetricsPolledAt: p.MetricsPolledAt,
		}
	}
	return out
}

func toContents(cs []domain.Content) []authsdk.Content {
	out := make([]authsdk.Content, len(cs))
	for i, c := range cs {
		out[i] = toContent(c)
	}
	return out
}

func toFilterPreset(f domain.FilterPreset) authsdk.FilterPreset {
	return authsdk.FilterPreset{
		ID:        f.ID,
		Title:     f.Title,
		Filters:   toFilters(f.Filters),
		CreatedAt: f.CreatedAt,
	}
}

func toFilterPresets(fs []domain.FilterPreset) []authsdk.FilterPreset {
	out := make([]authsdk.FilterPreset, len(fs))
	for i, f := range fs {
		out[i] = toFilterPreset(f)
	}
	return out
}
