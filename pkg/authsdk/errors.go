package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthExpired means the access token expired and could not be
	// refreshed right now. The session is kept; a later call may succeed.
	ErrAuthExpired = errors.New("authsdk: session expired")

	// ErrAuthInvalid is terminal: the session has been cleared and the user
	// has to log in again.
	ErrAuthInvalid = errors.New("authsdk: session invalid, login required")
)

// Error codes returned by the content API.
const (
	CodeUnauthorized      = "unauthorized"
	CodeTokenExpired      = "token_expired"
	CodeInvalidRequest    = "invalid_request"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeNotLinked         = "reddit_not_linked"
	CodeAlreadyPublished  = "already_published"
	CodeNotPublished      = "not_published"
	CodeRemoteGone        = "remote_gone"
	CodeRemoteForbidden   = "remote_forbidden"
	CodeRemoteUnavailable = "remote_unavailable"
	CodeSweepInProgress   = "sweep_in_progress"
	CodeServerError       = "server_error"
)

// ErrorResponse is the JSON error body written by the API.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("authsdk: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("authsdk: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// Is lets callers match on status with errors.Is(err, &APIError{StatusCode: 410}).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return (t.StatusCode == 0 || t.StatusCode == e.StatusCode) &&
		(t.Code == "" || t.Code == e.Code)
}

func parseErrorResponse(status int, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return &APIError{StatusCode: status, Code: er.Error, Description: er.ErrorDescription}
	}
	return &APIError{
		StatusCode:  status,
		Code:        CodeServerError,
		Description: http.StatusText(status),
	}
}
