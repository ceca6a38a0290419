package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/pkg/cryptox"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// LinkedCredential is an opened Reddit authorization.
type LinkedCredential struct {
	Username     string
	RefreshToken string
}

// LinkService links a user to their Reddit account through the
// authorization-code flow. Refresh tokens are sealed at rest.
type LinkService struct {
	Store  store.Store
	Reddit RedditAPI
	Sealer *cryptox.Sealer
}

// AuthURL returns the Reddit consent URL and the state value the client must
// check on the callback.
func (s *LinkService) AuthURL(ctx context.Context) (string, string, error) {
	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", "", err
	}
	return s.Reddit.AuthCodeURL(state), state, nil
}

// Status returns the linked account, if any.
func (s *LinkService) Status(ctx context.Context, userID string) (domain.LinkedAccount, bool, error) {
	a, err := s.Store.LinkedAccounts().GetLinkedAccount(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.LinkedAccount{}, false, nil
	}
	if err != nil {
		return domain.LinkedAccount{}, false, err
	}
	return a, true, nil
}

// Link exchanges an authorization code and stores the resulting refresh
// token. A user who is already linked gets their existing link back without
// the code being exchanged, so replaying a callback is harmless.
func (s *LinkService) Link(ctx context.Context, userID, code string) (domain.LinkedAccount, bool, error) {
	l := slogx.FromContext(ctx)

	if existing, ok, err := s.Status(ctx, userID); err != nil || ok {
		if ok {
			l.Info("reddit account already linked", slog.String("reddit_user", existing.Username))
		}
		return existing, ok, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.LinkedAccount{}, false, validationError("code is required")
	}

	refreshToken, err := s.Reddit.ExchangeCode(ctx, code)
	if err != nil {
		if errors.Is(err, reddit.ErrUnauthorized) {
			return domain.LinkedAccount{}, false, validationError("authorization code rejected by reddit")
		}
		return domain.LinkedAccount{}, false, remoteError("exchange code", err)
	}

	acct, err := s.Reddit.Me(ctx, refreshToken)
	if err != nil {
		return domain.LinkedAccount{}, false, remoteError("fetch reddit identity", err)
	}

	sealed, err := s.Sealer.SealString(refreshToken)
	if err != nil {
		return domain.LinkedAccount{}, false, err
	}

	now := time.Now()
	a := domain.LinkedAccount{
		UserID:             userID,
		Username:           acct.Name,
		RefreshTokenSealed: sealed,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Store.LinkedAccounts().UpsertLinkedAccount(ctx, a); err != nil {
		return domain.LinkedAccount{}, false, err
	}

	l.Info("reddit account linked", slog.String("reddit_user", acct.Name))
	return a, false, nil
}

// Unlink forgets the user's Reddit authorization. Unlinking an account that
// is not linked is a no-op.
func (s *LinkService) Unlink(ctx context.Context, userID string) error {
	cred, err := s.Credential(ctx, userID)
	if errors.Is(err, ErrNotLinked) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Store.LinkedAccounts().DeleteLinkedAccount(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	s.Reddit.Forget(cred.RefreshToken)
	return nil
}

// Credential opens the user's stored refresh token. It returns ErrNotLinked
// when there is none.
func (s *LinkService) Credential(ctx context.Context, userID string) (LinkedCredential, error) {
	a, err := s.Store.LinkedAccounts().GetLinkedAccount(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return LinkedCredential{}, ErrNotLinked
	}
	if err != nil {
		return LinkedCredential{}, err
	}

	rt, err := s.Sealer.OpenString(a.RefreshTokenSealed)
	if err != nil {
		return LinkedCredential{}, fmt.Errorf("open reddit token for %s: %w", userID, err)
	}
	return LinkedCredential{Username: a.Username, RefreshToken: rt}, nil
}
