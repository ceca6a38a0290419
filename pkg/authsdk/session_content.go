package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

func contentPath(id string) string {
	return "/api/v1/contents/" + url.PathEscape(id)
}

func (s *Session) SaveContent(ctx context.Context, req SaveContentRequest) (*Content, error) {
	var out Content
	if err := s.call(ctx, http.MethodPost, "/api/v1/contents", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContents returns the user's history, newest first.
func (s *Session) ListContents(ctx context.Context) ([]Content, error) {
	var out ContentList
	if err := s.call(ctx, http.MethodGet, "/api/v1/contents", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Contents, nil
}

func (s *Session) GetContent(ctx context.Context, id string) (*Content, error) {
	var out Content
	if err := s.call(ctx, http.MethodGet, contentPath(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContent edits the local title and body only.
func (s *Session) UpdateContent(ctx context.Context, id string, req UpdateContentRequest) (*Content, error) {
	var out Content
	if err := s.call(ctx, http.MethodPut, contentPath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteContent(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, contentPath(id), nil, nil, http.StatusNoContent)
}

// ToggleFavourite flips the favourite flag and returns the new value.
func (s *Session) ToggleFavourite(ctx context.Context, id string) (bool, error) {
	var out FavouriteResponse
	if err := s.call(ctx, http.MethodPost, contentPath(id)+"/favourite", nil, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.IsFavourite, nil
}

// Favourites returns favourite content together with the saved filter presets.
func (s *Session) Favourites(ctx context.Context) (*FavouritesResponse, error) {
	var out FavouritesResponse
	if err := s.call(ctx, http.MethodGet, "/api/v1/favourites", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveFilter stores a filter preset. A duplicate title returns an *APIError
// with status 409.
func (s *Session) SaveFilter(ctx context.Context, req SaveFilterRequest) (*FilterPreset, error) {
	var out FilterPreset
	if err := s.call(ctx, http.MethodPost, "/api/v1/filters", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteFilter(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/filters/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) ListFilters(ctx context.Context) ([]FilterPreset, error) {
	var out FilterList
	if err := s.call(ctx, http.MethodGet, "/api/v1/filters", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Filters, nil
}
