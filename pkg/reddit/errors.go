package reddit

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

var (
	// ErrNotFound means the post is absent from the by-id listing.
	ErrNotFound = errors.New("reddit: post not found")

	// ErrForbidden is a 403 from the API.
	ErrForbidden = errors.New("reddit: forbidden")

	// ErrUnauthorized means the refresh token was rejected. The account
	// needs to be linked again.
	ErrUnauthorized = errors.New("reddit: authorization revoked")

	// ErrUnavailable covers transport failures, 5xx and rate limiting.
	ErrUnavailable = errors.New("reddit: unavailable")

	// ErrNoRefreshToken is returned when a code exchange succeeds without a
	// refresh token, which happens if duration=permanent was not requested.
	ErrNoRefreshToken = errors.New("reddit: no refresh token issued")
)

// APIError carries the status and the API's own error text.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("reddit: %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("reddit: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

func statusError(op string, code int, msg string) error {
	var kind error
	switch {
	case code == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case code == http.StatusForbidden:
		kind = ErrForbidden
	case code == http.StatusNotFound:
		kind = ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		kind = ErrUnavailable
	}
	return &APIError{Op: op, StatusCode: code, Message: msg, kind: kind}
}

// classify maps transport and token errors onto the sentinels.
func classify(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		code := 0
		if re.Response != nil {
			code = re.Response.StatusCode
		}
		if code >= 500 || code == http.StatusTooManyRequests {
			return fmt.Errorf("reddit: %s: %w: %v", op, ErrUnavailable, err)
		}
		return fmt.Errorf("reddit: %s: %w: %v", op, ErrUnauthorized, err)
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return err
	}
	return fmt.Errorf("reddit: %s: %w: %v", op, ErrUnavailable, err)
}
