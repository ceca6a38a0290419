package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Me returns the account behind the refresh token.
func (c *Client) Me(ctx context.Context, refreshToken string) (Account, error) {
	var acct Account
	if err := c.do(ctx, refreshToken, "me", http.MethodGet, "/api/v1/me", nil, &acct); err != nil {
		return Account{}, err
	}
	return acct, nil
}

// Submit creates a self post and returns its fullname.
func (c *Client) Submit(ctx context.Context, refreshToken string, s Submission) (string, error) {
	form := url.Values{
		"api_type":    {"json"},
		"kind":        {"self"},
		"sr":          {s.Subreddit},
		"title":       {s.Title},
		"text":        {s.Text},
		"resubmit":    {"true"},
		"sendreplies": {"true"},
	}

	var env jsonEnvelope
	if err := c.do(ctx, refreshToken, "submit", http.MethodPost, "/api/submit", form, &env); err != nil {
		return "", err
	}
	if msg := env.firstError(); msg != "" {
		return "", &APIError{Op: "submit", StatusCode: http.StatusOK, Message: msg}
	}
	if env.JSON.Data.Name == "" {
		return "", &APIError{Op: "submit", StatusCode: http.StatusOK, Message: "response missing post name"}
	}
	return env.JSON.Data.Name, nil
}

// Post fetches a single post. A post missing from the listing returns
// ErrNotFound.
func (c *Client) Post(ctx context.Context, refreshToken, fullname string) (Post, error) {
	path := "/by_id/" + url.PathEscape(Fullname(fullname)) + ".json?raw_json=1"

	var l listing
	if err := c.do(ctx, refreshToken, "fetch post", http.MethodGet, path, nil, &l); err != nil {
		return Post{}, err
	}
	for _, child := range l.Data.Children {
		if child.Data.Fullname == Fullname(fullname) {
			return child.Data, nil
		}
	}
	return Post{}, ErrNotFound
}

// EditText replaces the body of a self post. Reddit does not allow titles to
// change.
func (c *Client) EditText(ctx context.Context, refreshToken, fullname, text string) error {
	form := url.Values{
		"api_type": {"json"},
		"thing_id": {Fullname(fullname)},
		"text":     {text},
	}

	var env jsonEnvelope
	if err := c.do(ctx, refreshToken, "edit post", http.MethodPost, "/api/editusertext", form, &env); err != nil {
		return err
	}
	if msg := env.firstError(); msg != "" {
		return &APIError{Op: "edit post", StatusCode: http.StatusOK, Message: msg}
	}
	return nil
}

// Delete removes a post authored by the account.
func (c *Client) Delete(ctx context.Context, refreshToken, fullname string) error {
	form := url.Values{"id": {Fullname(fullname)}}
	return c.do(ctx, refreshToken, "delete post", http.MethodPost, "/api/del", form, nil)
}

func (c *Client) do(
	ctx context.Context,
	refreshToken, op, method, path string,
	form url.Values,
	out any,
) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("reddit: %s: build request: %w", op, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient(refreshToken).Do(req)
	if err != nil {
		return classify(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return classify(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, apiMessage(raw))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("reddit: %s: decode response: %w", op, err)
	}
	return nil
}

func apiMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
