package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/pkg/idx"
	"github.com/aussiebroadwan/contentdeck/pkg/jwtx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
)

// SessionService issues the access and refresh cookies. Both tokens are
// HS256 JWTs signed with separate secrets, so nothing is stored per session.
type SessionService struct {
	Store           store.Store
	Identity        IdentityVerifier
	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier
	Issuer          string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
}

// Login verifies the upstream ID token, finds or creates the user and issues
// a fresh token pair.
func (s *SessionService) Login(ctx context.Context, rawIDToken string) (domain.User, domain.Session, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	if rawIDToken == "" {
		return domain.User{}, domain.Session{}, validationError("id_token is required")
	}

	ident, err := s.Identity.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		l.Info("id token rejected", slog.Any("error", err))
		return domain.User{}, domain.Session{}, err
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().GetUserBySubject(ctx, ident.Subject)
		switch {
		case errors.Is(err, store.ErrNotFound):
			user = domain.User{
				ID:          idx.NewAt(now).String(),
				Subject:     ident.Subject,
				Email:       ident.Email,
				Name:        ident.Name,
				CreatedAt:   now,
				UpdatedAt:   now,
				LastLoginAt: now,
			}
			return tx.Users().CreateUser(ctx, user)
		case err != nil:
			return err
		}

		if err := tx.Users().RecordLogin(ctx, existing.ID, ident.Email, ident.Name, now); err != nil {
			return err
		}
		user, err = tx.Users().GetUserByID(ctx, existing.ID)
		return err
	})
	if err != nil {
		l.Error("failed to record login", slog.Any("error", err))
		return domain.User{}, domain.Session{}, err
	}

	sess, err := s.issue(user, now)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return user, sess, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	now := time.Now()

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		slogx.FromContext(ctx).Info("refresh token rejected", slog.Any("error", err))
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", time.Time{}, ErrInvalidRefresh
		}
		return "", time.Time{}, err
	}

	access, err := s.AccessSigner.Sign(jwtx.NewSessionClaims(user.ID, jwtx.KindAccess, user.Name, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return "", time.Time{}, err
	}
	return access, now.Add(s.AccessTTL), nil
}

// Me returns the user behind a session.
func (s *SessionService) Me(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func (s *SessionService) CompleteTutorial(ctx context.Context, userID string) error {
	err := s.Store.Users().SetTutorialCompleted(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *SessionService) issue(user domain.User, now time.Time) (domain.Session, error) {
	access, err := s.AccessSigner.Sign(jwtx.NewSessionClaims(user.ID, jwtx.KindAccess, user.Name, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.Session{}, err
	}
	refresh, err := s.RefreshSigner.Sign(jwtx.NewSessionClaims(user.ID, jwtx.KindRefresh, user.Name, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{
		UserID:           user.ID,
		AccessToken:      access,
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshToken:     refresh,
		RefreshExpiresAt: now.Add(s.RefreshTTL),
	}, nil
}
