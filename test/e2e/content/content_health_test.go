package content_test

import (
	"testing"

	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness probe of a fresh container.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupContentContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies the readiness probe reports the database.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupContentContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
