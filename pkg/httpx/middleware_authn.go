package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/contentdeck/pkg/jwtx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// AccessCookieName is the cookie carrying the access token.
const AccessCookieName = "access_token"

// SessionAuth verifies the access token from the access cookie or, failing
// that, an Authorization bearer header. Every failure is a 401; an expired
// token uses the "token_expired" code so clients know a refresh will help.
func SessionAuth(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := accessToken(r)
			if raw == "" {
				writeUnauthorized(w, "unauthorized", "missing access token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeUnauthorized(w, "token_expired", "access token expired")
					return
				}
				slogx.FromContext(r.Context()).Warn("access token rejected", "err", err)
				writeUnauthorized(w, "unauthorized", "invalid access token")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, code, desc)
}
