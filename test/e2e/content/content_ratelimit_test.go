package content_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that login is limited per client IP.
// The default burst is 10, so the 11th rapid attempt is throttled.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupContentContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	for i := range 10 {
		_, _, err := client.Login(t.Context(), "not-a-google-token")
		assertStatus(t, err, http.StatusUnauthorized, "Should not be rate limited yet")
		t.Logf("attempt %d rejected with 401", i+1)
	}

	_, _, err := client.Login(t.Context(), "not-a-google-token")
	assertStatus(t, err, http.StatusTooManyRequests, "Should be rate limited after 10 attempts")
}

// TestRateLimitDoesNotApplyAcrossRoutes verifies that exhausting the login
// limit leaves the health probes usable.
func TestRateLimitDoesNotApplyAcrossRoutes(t *testing.T) {
	baseURL, cleanup := setupContentContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	for range 11 {
		_, _, _ = client.Login(t.Context(), "not-a-google-token")
	}

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}
