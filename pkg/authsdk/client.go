package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// Cookie names set by the API.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SDKClient talks to the contentdeck API. It handles the unauthenticated
// calls and creates Sessions for everything else.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger: slogx.Discard(),
	}
}

// Login exchanges an upstream ID token for a session.
func (c *SDKClient) Login(ctx context.Context, idToken string) (*Session, User, error) {
	req, err := NewJSONRequest(http.MethodPost, "/api/v1/session/login", LoginRequest{IDToken: idToken})
	if err != nil {
		return nil, User{}, err
	}

	resp, err := c.send(ctx, req, nil)
	if err != nil {
		return nil, User{}, err
	}

	var out LoginResponse
	cookies := resp.Cookies()
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, User{}, err
	}

	creds := Credentials{UserID: out.User.ID}
	for _, ck := range cookies {
		switch ck.Name {
		case AccessCookie:
			creds.AccessToken = ck.Value
		case RefreshCookie:
			creds.RefreshToken = ck.Value
		}
	}
	if !creds.Valid() {
		return nil, User{}, fmt.Errorf("authsdk: login response did not set session cookies")
	}

	return c.NewSession(NewMemoryCredentialStore(creds)), out.User, nil
}

// NewSession wraps an existing credential store.
func (c *SDKClient) NewSession(store CredentialStore) *Session {
	s := &Session{client: c, store: store}
	s.coord = NewRefreshCoordinator(store, c.refreshAccess, c.Logger)
	return s
}

// refreshAccess calls the refresh endpoint with the refresh cookie and returns
// the access token from the reissued cookie.
func (c *SDKClient) refreshAccess(ctx context.Context, refreshToken string) (string, error) {
	req := NewRequest(http.MethodPost, "/api/v1/session/refresh", nil)
	resp, err := c.send(ctx, req, []*http.Cookie{{Name: RefreshCookie, Value: refreshToken}})
	if err != nil {
		return "", err
	}

	cookies := resp.Cookies()
	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	for _, ck := range cookies {
		if ck.Name == AccessCookie && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", nil
}

// GetLiveness calls /livez.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness calls /readyz.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.send(ctx, NewRequest(http.MethodGet, path, nil), nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) send(ctx context.Context, r Request, cookies []*http.Cookie) (*http.Response, error) {
	req, err := r.build(ctx, c.BaseURL)
	if err != nil {
		return nil, err
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authsdk: %s %s: %w", r.Method, r.Path, err)
	}
	return resp, nil
}

// decodeJSON reads the body, returning an *APIError if the status is not the
// expected one. A nil target skips decoding.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("authsdk: read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, body)
	}
	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("authsdk: decode response: %w", err)
	}
	return nil
}
