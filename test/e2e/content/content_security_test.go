package content_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginWithoutProvider verifies that a container without a configured
// login provider rejects every ID token.
func TestLoginWithoutProvider(t *testing.T) {
	baseURL, cleanup := setupContentContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	_, _, err := client.Login(t.Context(), "not-a-google-token")
	assertStatus(t, err, http.StatusUnauthorized, "Login should be rejected")

	_, _, err = client.Login(t.Context(), "")
	assertStatus(t, err, http.StatusBadRequest, "Empty ID token should be invalid")
}

// TestForgedSessionIsInvalidated verifies that made-up session cookies are
// rejected and the client drops them.
func TestForgedSessionIsInvalidated(t *testing.T) {
	baseURL, cleanup := setupContentContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	creds := authsdk.NewMemoryCredentialStore(authsdk.Credentials{
		UserID:       "01JAAAAAAAAAAAAAAAAAAAAAAA",
		AccessToken:  "invalid-access-token",
		RefreshToken: "invalid-refresh-token",
	})
	session := client.NewSession(creds)

	var invalidated error
	session.OnSessionInvalidated(func(err error) { invalidated = err })

	_, err := session.ListContents(t.Context())
	require.ErrorIs(t, err, authsdk.ErrAuthInvalid)
	require.ErrorIs(t, invalidated, authsdk.ErrAuthInvalid)
	require.False(t, creds.Load().Valid(), "Credentials should be cleared")
}

// TestSecurityHeaders verifies the headers set on every response.
func TestSecurityHeaders(t *testing.T) {
	baseURL, cleanup := setupContentContainer(t)
	defer cleanup()

	resp, err := http.Get(baseURL + "/api/v1/contents")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	require.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
	require.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
}

// TestCORSAllowsConfiguredOrigin verifies preflight handling for the
// configured browser origin only.
func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	baseURL, cleanup := setupContentContainer(t)
	defer cleanup()

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, baseURL+"/api/v1/contents", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	allowed := preflight(appOrigin)
	require.Equal(t, http.StatusNoContent, allowed.StatusCode)
	require.Equal(t, appOrigin, allowed.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", allowed.Header.Get("Access-Control-Allow-Credentials"))

	other := preflight("https://evil.example.com")
	require.Empty(t, other.Header.Get("Access-Control-Allow-Origin"))
}
