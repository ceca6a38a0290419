package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

type errorMapping struct {
	err    error
	status int
	code   string
	desc   string
}

// errorMappings is checked in order, so the more specific errors come first.
var errorMappings = []errorMapping{
	{service.ErrInvalidIDToken, http.StatusUnauthorized, authsdk.CodeUnauthorized, "Login token rejected"},
	{service.ErrInvalidRefresh, http.StatusUnauthorized, authsdk.CodeUnauthorized, "Session expired, please log in again"},
	{service.ErrUserNotFound, http.StatusUnauthorized, authsdk.CodeUnauthorized, "Session no longer valid"},
	{service.ErrContentNotFound, http.StatusNotFound, authsdk.CodeNotFound, "Content not found"},
	{service.ErrFilterNotFound, http.StatusNotFound, authsdk.CodeNotFound, "Filter not found"},
	{service.ErrFilterExists, http.StatusConflict, authsdk.CodeConflict, "A filter with this title already exists"},
	{service.ErrAlreadyPublished, http.StatusConflict, authsdk.CodeAlreadyPublished, "Content is already published on Reddit"},
	{service.ErrSweepInProgress, http.StatusConflict, authsdk.CodeSweepInProgress, "A metrics sweep is already running"},
	{service.ErrNotLinked, http.StatusBadRequest, authsdk.CodeNotLinked, "Link a Reddit account first"},
	{service.ErrNotPublished, http.StatusBadRequest, authsdk.CodeNotPublished, "Content is not published on Reddit"},
	{service.ErrRemoteGone, http.StatusGone, authsdk.CodeRemoteGone, "The Reddit post no longer exists"},
	{service.ErrRemoteForbidden, http.StatusForbidden, authsdk.CodeRemoteForbidden, "Reddit refused the request for this account"},
	{service.ErrRemoteUnavailable, http.StatusBadGateway, authsdk.CodeRemoteUnavailable, "Reddit is unavailable, try again later"},
}

// writeServiceError maps a service error onto a status and a single user
// facing message. The full error only goes to the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := slogx.FromContext(r.Context())

	if errors.Is(err, service.ErrValidation) {
		log.Info(op+" rejected", "error", err)
		httpx.WriteError(w, http.StatusBadRequest, authsdk.CodeInvalidRequest, validationMessage(err))
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				log.Warn(op+" failed", "error", err)
			} else {
				log.Info(op+" failed", "error", err)
			}
			httpx.WriteError(w, m.status, m.code, m.desc)
			return
		}
	}

	log.Error(op+" failed", "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, authsdk.CodeServerError, "Internal server error")
}

// validationMessage strips the sentinel prefix so users see the field message.
func validationMessage(err error) string {
	msg := err.Error()
	if after, ok := strings.CutPrefix(msg, service.ErrValidation.Error()+": "); ok {
		return after
	}
	return msg
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, authsdk.CodeInvalidRequest, desc)
}
