package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// refreshCookiePath keeps the refresh cookie off every request but the
// session endpoints.
const refreshCookiePath = "/api/v1/session"

// SessionHandler handles login, refresh, logout and the per-user flags.
type SessionHandler struct {
	SessionService *service.SessionService
	Secure         bool
}

func (h *SessionHandler) cookie(name, value, path string, expires time.Time) *http.Cookie {
	maxAge := int(time.Until(expires).Seconds())
	if value == "" {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *SessionHandler) clearCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(authsdk.AccessCookie, "", "/", time.Unix(0, 0)))
	http.SetCookie(w, h.cookie(authsdk.RefreshCookie, "", refreshCookiePath, time.Unix(0, 0)))
}

// HandleLogin handles POST /api/v1/session/login
//
//	@Summary		Log in
//	@Description	Verifies an ID token from the identity provider, creates the user on first login and sets the access_token and refresh_token cookies.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"ID token"
//	@Success		200		{object}	authsdk.LoginResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/session/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	user, sess, err := h.SessionService.Login(r.Context(), req.IDToken)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	http.SetCookie(w, h.cookie(authsdk.AccessCookie, sess.AccessToken, "/", sess.AccessExpiresAt))
	http.SetCookie(w, h.cookie(authsdk.RefreshCookie, sess.RefreshToken, refreshCookiePath, sess.RefreshExpiresAt))
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{User: toUser(user)})
}

// HandleRefresh handles POST /api/v1/session/refresh
//
//	@Summary		Refresh the access token
//	@Description	Consumes the refresh_token cookie and reissues the access_token cookie. The refresh token is not rotated.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	authsdk.RefreshResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		429	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/session/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ck, err := r.Cookie(authsdk.RefreshCookie)
	if err != nil || ck.Value == "" {
		httpx.WriteError(w, http.StatusUnauthorized, authsdk.CodeUnauthorized, "Missing refresh token")
		return
	}

	access, expires, err := h.SessionService.Refresh(r.Context(), ck.Value)
	if err != nil {
		h.clearCookies(w)
		writeServiceError(w, r, "refresh", err)
		return
	}

	http.SetCookie(w, h.cookie(authsdk.AccessCookie, access, "/", expires))
	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshResponse{
		ExpiresIn: int(time.Until(expires).Round(time.Second).Seconds()),
	})
}

// HandleLogout handles POST /api/v1/session/logout
//
//	@Summary		Log out
//	@Description	Clears both session cookies.
//	@Tags			Session
//	@Success		204	"Logged out"
//	@Router			/api/v1/session/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearCookies(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /api/v1/session
//
//	@Summary		Check the session
//	@Tags			Session
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	authsdk.SessionResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/session [get].
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.SessionService.Me(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, "session check", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{Authenticated: true, User: toUser(user)})
}

// HandleTutorialStatus handles GET /api/v1/me/tutorial
//
//	@Summary	Tutorial status
//	@Tags		Session
//	@Produce	json
//	@Security	CookieAuth
//	@Success	200	{object}	authsdk.TutorialStatus
//	@Failure	401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/me/tutorial [get].
func (h *SessionHandler) HandleTutorialStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.SessionService.Me(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, "tutorial status", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.TutorialStatus{Completed: user.TutorialCompleted})
}

// HandleTutorialComplete handles POST /api/v1/me/tutorial
//
//	@Summary	Mark the tutorial completed
//	@Tags		Session
//	@Security	CookieAuth
//	@Success	204	"Tutorial completed"
//	@Failure	401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router		/api/v1/me/tutorial [post].
func (h *SessionHandler) HandleTutorialComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.SessionService.CompleteTutorial(ctx, httpx.UserIDFromContext(ctx)); err != nil {
		writeServiceError(w, r, "complete tutorial", err)
		return
	}
	slogx.FromContext(ctx).Info("tutorial completed")
	w.WriteHeader(http.StatusNoContent)
}
