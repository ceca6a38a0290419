package content_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and assertions for the content service end-to-end tests.
 * The suite needs a docker daemon and only runs with CONTENTDECK_E2E=1.
 */

const (
	testImageName = "contentdeck-test:latest"
	appOrigin     = "https://app.contentdeck.test"
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTENTDECK_E2E") != "1" {
		fmt.Fprintln(os.Stdout, "CONTENTDECK_E2E not set, skipping end-to-end tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building ContentDeck Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up ContentDeck Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/contentdeck/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// baseEnv runs the service without a login provider, so every login is
// rejected, and with throwaway secrets.
func baseEnv() map[string]string {
	return map[string]string{
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"DATABASE_FILE":      "/data/contentdeck.db",
		"JWT_ACCESS_SECRET":  "e2e-access-secret-0123456789abcdef0123",
		"JWT_REFRESH_SECRET": "e2e-refresh-secret-0123456789abcdef012",
		"CORS_ORIGIN":        appOrigin,
	}
}

// setupContentContainer starts the service with relaxed rate limits.
func setupContentContainer(t *testing.T) (string, func()) {
	t.Helper()
	env := baseEnv()
	for _, name := range []string{"AUTH", "REMOTE", "API"} {
		env["RATELIMIT_"+name+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+name+"_WINDOW_SEC"] = "60"
		env["RATELIMIT_"+name+"_BURST"] = "1000"
	}
	return startContainer(t, env)
}

// setupContentContainerWithDefaultRateLimits starts the service with the
// production rate limits. Only the rate limit tests should need it.
func setupContentContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          maps.Clone(env),
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertStatus checks that err is an API error with the given status.
func assertStatus(t *testing.T, err error, status int, context string) {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr), "%s - expected an API error, got: %v", context, err)
	require.Equal(t, status, apiErr.StatusCode, "%s - unexpected status: %v", context, err)
}
