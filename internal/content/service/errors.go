package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidIDToken  = errors.New("invalid id token")
	ErrInvalidRefresh  = errors.New("invalid refresh token")
	ErrUserNotFound    = errors.New("user not found")
	ErrContentNotFound = errors.New("content not found")
	ErrFilterNotFound  = errors.New("filter not found")
	ErrFilterExists    = errors.New("a filter with this title already exists")
)

// Reddit lifecycle errors.
var (
	ErrNotLinked         = errors.New("reddit account not linked")
	ErrAlreadyPublished  = errors.New("content is already posted to reddit")
	ErrNotPublished      = errors.New("content is not posted to reddit")
	ErrRemoteGone        = errors.New("post has already been deleted from reddit")
	ErrRemoteForbidden   = errors.New("post belongs to a different reddit account")
	ErrRemoteUnavailable = errors.New("reddit is unavailable")
	ErrSweepInProgress   = errors.New("metrics sweep already in progress")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// remoteError maps a reddit client failure onto the lifecycle errors. The
// cause stays in the chain for logging.
func remoteError(op string, err error) error {
	switch {
	case errors.Is(err, reddit.ErrForbidden):
		return fmt.Errorf("%s: %w: %w", op, ErrRemoteForbidden, err)
	case errors.Is(err, reddit.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrRemoteGone, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrRemoteUnavailable, err)
	}
}
