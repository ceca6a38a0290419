package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "PORT", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "GOOGLE_ISSUER", "REDDIT_API_URL", "METRICS_INTERVAL",
		"RATELIMIT_AUTH_REQUESTS", "RATELIMIT_AUTH_WINDOW_SEC", "RATELIMIT_AUTH_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "dev", cfg.Env)
	require.False(t, cfg.IsProd())
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "https://accounts.google.com", cfg.GoogleIssuer)
	require.Equal(t, reddit.DefaultAPIURL, cfg.Reddit.APIURL)
	require.Equal(t, 5*time.Minute, cfg.MetricsInterval)
	require.Equal(t, httpx.AuthLimit, cfg.AuthLimit)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("METRICS_INTERVAL", "90s")
	t.Setenv("ACCESS_TOKEN_TTL", "10")
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")
	t.Setenv("REDDIT_CLIENT_ID", "reddit-client")
	t.Setenv("RATELIMIT_AUTH_BURST", "3")

	cfg := LoadConfig()

	require.True(t, cfg.IsProd())
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 90*time.Second, cfg.MetricsInterval)
	require.Equal(t, 10*time.Minute, cfg.AccessTTL, "bare integers are minutes")
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL, "invalid values fall back to the default")
	require.Equal(t, "reddit-client", cfg.Reddit.ClientID)
	require.Equal(t, 3, cfg.AuthLimit.Burst)
	require.Equal(t, httpx.AuthLimit.Requests, cfg.AuthLimit.Requests)
}
