package http

import (
	"net/http"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
)

// RedditHandler handles account linking and the post lifecycle.
type RedditHandler struct {
	LinkService      *service.LinkService
	LifecycleService *service.LifecycleService
	MetricsJob       *service.MetricsJob
}

// HandleAuthURL handles GET /api/v1/reddit/auth-url
//
//	@Summary		Reddit consent URL
//	@Description	Returns the URL to send the user to and the state value to check on the callback.
//	@Tags			Reddit
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	authsdk.RedditAuthURLResponse
//	@Router			/api/v1/reddit/auth-url [get].
func (h *RedditHandler) HandleAuthURL(w http.ResponseWriter, r *http.Request) {
	u, state, err := h.LinkService.AuthURL(r.Context())
	if err != nil {
		writeServiceError(w, r, "build reddit auth url", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.RedditAuthURLResponse{URL: u, State: state})
}

// HandleLinkStatus handles GET /api/v1/reddit/link
//
//	@Summary	Reddit link status
//	@Tags		Reddit
//	@Produce	json
//	@Security	CookieAuth
//	@Success	200	{object}	authsdk.RedditLinkStatus
//	@Router		/api/v1/reddit/link [get].
func (h *RedditHandler) HandleLinkStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acct, linked, err := h.LinkService.Status(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, "reddit link status", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.RedditLinkStatus{Linked: linked, Username: acct.Username})
}

// HandleLink handles POST /api/v1/reddit/link
//
//	@Summary		Link a Reddit account
//	@Description	Exchanges the authorization code from the Reddit callback. Linking an account that is already linked succeeds without using the code.
//	@Tags			Reddit
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Param			request	body		authsdk.RedditLinkRequest	true	"Authorization code"
//	@Success		200		{object}	authsdk.RedditLinkStatus
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		502		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/reddit/link [post].
func (h *RedditHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RedditLinkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	acct, already, err := h.LinkService.Link(ctx, httpx.UserIDFromContext(ctx), req.Code)
	if err != nil {
		writeServiceError(w, r, "link reddit", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.RedditLinkStatus{
		Linked:        true,
		Username:      acct.Username,
		AlreadyLinked: already,
	})
}

// HandleUnlink handles DELETE /api/v1/reddit/link
//
//	@Summary	Unlink the Reddit account
//	@Tags		Reddit
//	@Security	CookieAuth
//	@Success	204	"Unlinked"
//	@Router		/api/v1/reddit/link [delete].
func (h *RedditHandler) HandleUnlink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.LinkService.Unlink(ctx, httpx.UserIDFromContext(ctx)); err != nil {
		writeServiceError(w, r, "unlink reddit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePublish handles POST /api/v1/contents/{id}/reddit
//
//	@Summary		Publish to Reddit
//	@Description	Submits the record as a self post on the linked account's profile.
//	@Tags			Reddit
//	@Produce		json
//	@Security		CookieAuth
//	@Param			id	path		string	true	"Content ID"
//	@Success		200	{object}	authsdk.Content
//	@Failure		400	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		502	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents/{id}/reddit [post].
func (h *RedditHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.LifecycleService.Publish(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "publish", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toContent(c))
}

// HandleEdit handles PUT /api/v1/contents/{id}/reddit
//
//	@Summary		Edit the Reddit post
//	@Description	Edits the post body on Reddit, then the local record. Reddit does not allow changing a post title, so the title is only stored locally.
//	@Tags			Reddit
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Param			id		path		string							true	"Content ID"
//	@Param			request	body		authsdk.UpdateContentRequest	true	"New title and body"
//	@Success		200		{object}	authsdk.Content
//	@Failure		403		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		410		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		502		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents/{id}/reddit [put].
func (h *RedditHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateContentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	c, err := h.LifecycleService.Edit(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), req.Title, req.Response)
	if err != nil {
		writeServiceError(w, r, "edit post", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toContent(c))
}

// HandleDelete handles DELETE /api/v1/contents/{id}/reddit
//
//	@Summary		Delete the Reddit post
//	@Description	Deletes the post on Reddit and unpublishes the record. The local record is kept.
//	@Tags			Reddit
//	@Security		CookieAuth
//	@Param			id	path	string	true	"Content ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		410	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		502	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents/{id}/reddit [delete].
func (h *RedditHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.LifecycleService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFetch handles GET /api/v1/contents/{id}/reddit
//
//	@Summary		Fetch the latest post from Reddit
//	@Description	Overwrites the local body when it differs from Reddit and reports whether it did.
//	@Tags			Reddit
//	@Produce		json
//	@Security		CookieAuth
//	@Param			id	path		string	true	"Content ID"
//	@Success		200	{object}	authsdk.FetchPostResponse
//	@Failure		410	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		502	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/contents/{id}/reddit [get].
func (h *RedditHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.LifecycleService.FetchLatest(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "fetch post", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.FetchPostResponse{
		Title:    res.Title,
		Response: res.Response,
		Updated:  res.Updated,
		Content:  toContent(res.Content),
	})
}

// HandleSweep handles POST /api/v1/reddit/metrics/sweep
//
//	@Summary		Run a metrics sweep now
//	@Description	Refreshes upvote and comment counts for every published record. Only one sweep runs at a time.
//	@Tags			Reddit
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	authsdk.SweepReport
//	@Failure		409	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/reddit/metrics/sweep [post].
func (h *RedditHandler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	rep, err := h.MetricsJob.SweepNow(r.Context())
	if err != nil {
		writeServiceError(w, r, "metrics sweep", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.SweepReport{
		StartedAt:  rep.StartedAt,
		FinishedAt: rep.FinishedAt,
		Scanned:    rep.Scanned,
		Updated:    rep.Updated,
		Skipped:    rep.Skipped,
		Gone:       rep.Gone,
		Failed:     rep.Failed,
	})
}
