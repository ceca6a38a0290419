package service

import (
	"context"

	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
)

// RedditAPI is the subset of *reddit.Client the services use.
type RedditAPI interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	Forget(refreshToken string)

	Me(ctx context.Context, refreshToken string) (reddit.Account, error)
	Submit(ctx context.Context, refreshToken string, s reddit.Submission) (string, error)
	Post(ctx context.Context, refreshToken, fullname string) (reddit.Post, error)
	EditText(ctx context.Context, refreshToken, fullname, text string) error
	Delete(ctx context.Context, refreshToken, fullname string) error
}

var _ RedditAPI = (*reddit.Client)(nil)
