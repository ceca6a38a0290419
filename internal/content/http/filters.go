package http

import (
	"net/http"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
)

type FiltersHandler struct {
	FilterService *service.FilterService
}

// HandleCreate handles POST /api/v1/filters
//
//	@Summary	Save a filter preset
//	@Tags		Filters
//	@Accept		json
//	@Produce	json
//	@Security	CookieAuth
//	@Param		request	body		authsdk.SaveFilterRequest	true	"Preset"
//	@Success	201		{object}	authsdk.FilterPreset
//	@Failure	400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure	409		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/filters [post].
func (h *FiltersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SaveFilterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	f, err := h.FilterService.Save(ctx, httpx.UserIDFromContext(ctx), req.Title, fromFilters(req.Filters))
	if err != nil {
		writeServiceError(w, r, "save filter", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toFilterPreset(f))
}

// HandleList handles GET /api/v1/filters
//
//	@Summary	List filter presets
//	@Tags		Filters
//	@Produce	json
//	@Security	CookieAuth
//	@Success	200	{object}	authsdk.FilterList
//	@Router		/api/v1/filters [get].
func (h *FiltersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fs, err := h.FilterService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, "list filters", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.FilterList{Filters: toFilterPresets(fs)})
}

// HandleDelete handles DELETE /api/v1/filters/{id}
//
//	@Summary	Delete a filter preset
//	@Tags		Filters
//	@Security	CookieAuth
//	@Param		id	path	string	true	"Filter ID"
//	@Success	204	"Deleted"
//	@Failure	404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/filters/{id} [delete].
func (h *FiltersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.FilterService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete filter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
