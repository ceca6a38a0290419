package http

import (
	"net/http"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
)

// ContentsHandler handles the saved content and favourites endpoints.
type ContentsHandler struct {
	ContentService *service.ContentService
}

// HandleCreate handles POST /api/v1/contents
//
//	@Summary		Save generated content
//	@Tags			Contents
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Param			request	body		authsdk.SaveContentRequest	true	"Content to save"
//	@Success		201		{object}	authsdk.Content
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents [post].
func (h *ContentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SaveContentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	c, err := h.ContentService.Save(ctx, httpx.UserIDFromContext(ctx), service.NewContent{
		Title:    req.Title,
		Prompt:   req.Prompt,
		Response: req.Response,
		Filters:  fromFilters(req.Filters),
	})
	if err != nil {
		writeServiceError(w, r, "save content", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toContent(c))
}

// HandleList handles GET /api/v1/contents
//
//	@Summary		List saved content, newest first
//	@Tags			Contents
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	authsdk.ContentList
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents [get].
func (h *ContentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cs, err := h.ContentService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, "list contents", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.ContentList{Contents: toContents(cs)})
}

// HandleGet handles GET /api/v1/contents/{id}
//
//	@Summary	Get one saved content record
//	@Tags		Contents
//	@Produce	json
//	@Security	CookieAuth
//	@Param		id	path		string	true	"Content ID"
//	@Success	200	{object}	authsdk.Content
//	@Failure	401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure	404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/contents/{id} [get].
func (h *ContentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.ContentService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get content", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toContent(c))
}

// HandleUpdate handles PUT /api/v1/contents/{id}
//
//	@Summary		Edit the local title and body
//	@Description	Only unpublished records can be edited locally. Published records are edited through the Reddit endpoint.
//	@Tags			Contents
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Param			id		path		string							true	"Content ID"
//	@Param			request	body		authsdk.UpdateContentRequest	true	"New title and body"
//	@Success		200		{object}	authsdk.Content
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents/{id} [put].
func (h *ContentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateContentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	c, err := h.ContentService.Update(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), req.Title, req.Response)
	if err != nil {
		writeServiceError(w, r, "update content", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toContent(c))
}

// HandleDelete handles DELETE /api/v1/contents/{id}
//
//	@Summary		Delete a saved record
//	@Description	Removes the local record only. A Reddit post made from it is left alone.
//	@Tags			Contents
//	@Security		CookieAuth
//	@Param			id	path	string	true	"Content ID"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents/{id} [delete].
func (h *ContentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.ContentService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete content", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleFavourite handles POST /api/v1/contents/{id}/favourite
//
//	@Summary	Toggle the favourite flag
//	@Tags		Contents
//	@Produce	json
//	@Security	CookieAuth
//	@Param		id	path		string	true	"Content ID"
//	@Success	200	{object}	authsdk.FavouriteResponse
//	@Failure	404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/contents/{id}/favourite [post].
func (h *ContentsHandler) HandleToggleFavourite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fav, err := h.ContentService.ToggleFavourite(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "toggle favourite", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.FavouriteResponse{IsFavourite: fav})
}

// HandleFavourites handles GET /api/v1/favourites
//
//	@Summary	List favourites with the saved filter presets
//	@Tags		Contents
//	@Produce	json
//	@Security	CookieAuth
//	@Success	200	{object}	authsdk.FavouritesResponse
//	@Failure	401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/favourites [get].
func (h *ContentsHandler) HandleFavourites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	favs, presets, err := h.ContentService.Favourites(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, "list favourites", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.FavouritesResponse{
		Favourites: toContents(favs),
		Filters:    toFilterPresets(presets),
	})
}
