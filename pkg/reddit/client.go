// Package reddit is a small Reddit API client covering what contentdeck
// needs: linking an account through the authorization-code flow and managing
// self posts on the user's own profile subreddit.
//
// Every call is made on behalf of a linked account identified by its refresh
// token. Access tokens are minted through golang.org/x/oauth2 and cached per
// refresh token until they expire.
package reddit

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/cryptox"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL   = "https://oauth.reddit.com"
	DefaultAuthURL  = "https://www.reddit.com/api/v1/authorize"
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
)

// Scopes requested when linking an account.
var Scopes = []string{"identity", "submit", "read", "edit", "history"}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// UserAgent is required by Reddit on every request, including token
	// requests.
	UserAgent string

	APIURL   string
	AuthURL  string
	TokenURL string

	// HTTPClient is the base client. Defaults to one with a 15s timeout.
	HTTPClient *http.Client
}

type Client struct {
	oauth     *oauth2.Config
	apiURL    string
	base      *http.Client
	tokenCtx  context.Context
	sourcesMu sync.Mutex
	sources   map[string]oauth2.TokenSource
}

func New(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "contentdeck/1.0"
	}

	baseTransport := http.DefaultTransport
	timeout := 15 * time.Second
	if cfg.HTTPClient != nil {
		if cfg.HTTPClient.Transport != nil {
			baseTransport = cfg.HTTPClient.Transport
		}
		if cfg.HTTPClient.Timeout > 0 {
			timeout = cfg.HTTPClient.Timeout
		}
	}
	base := &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{agent: cfg.UserAgent, next: baseTransport},
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		base:     base,
		tokenCtx: context.WithValue(context.Background(), oauth2.HTTPClient, base),
		sources:  make(map[string]oauth2.TokenSource),
	}
}

// AuthCodeURL returns the Reddit consent URL. duration=permanent is what makes
// Reddit hand back a refresh token.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("duration", "permanent"))
}

// ExchangeCode trades an authorization code for the account's refresh token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	tok, err := c.oauth.Exchange(context.WithValue(ctx, oauth2.HTTPClient, c.base), code)
	if err != nil {
		return "", classify("exchange code", err)
	}
	if tok.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}
	return tok.RefreshToken, nil
}

// Forget drops any cached access token for the refresh token.
func (c *Client) Forget(refreshToken string) {
	c.sourcesMu.Lock()
	delete(c.sources, cryptox.FingerprintToken(refreshToken))
	c.sourcesMu.Unlock()
}

// httpClient returns a client that authenticates as the account owning
// refreshToken.
func (c *Client) httpClient(refreshToken string) *http.Client {
	key := cryptox.FingerprintToken(refreshToken)

	c.sourcesMu.Lock()
	src, ok := c.sources[key]
	if !ok {
		src = c.oauth.TokenSource(c.tokenCtx, &oauth2.Token{RefreshToken: refreshToken})
		c.sources[key] = src
	}
	c.sourcesMu.Unlock()

	return &http.Client{
		Timeout:   c.base.Timeout,
		Transport: &oauth2.Transport{Source: src, Base: c.base.Transport},
	}
}

type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(r)
}
