package service_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer        = "https://accounts.example.com"
	testClientID      = "contentdeck-web"
	testSessionIss    = "contentdeck"
	testAccessSecret  = "access-secret-access-secret-0000"
	testRefreshSecret = "refresh-secret-refresh-secret-00"
)

type sessionHarness struct {
	*harness
	key      *rsa.PrivateKey
	sessions *service.SessionService
	access   jwtx.Verifier
}

func newSessionHarness(t *testing.T) *sessionHarness {
	t.Helper()
	h := newHarness(t)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	accessSigner, err := jwtx.NewSignerHS256([]byte(testAccessSecret))
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256([]byte(testRefreshSecret))
	require.NoError(t, err)

	return &sessionHarness{
		harness: h,
		key:     key,
		sessions: &service.SessionService{
			Store:           h.store,
			Identity:        service.NewStaticOIDCVerifier(testIssuer, testClientID, &key.PublicKey),
			AccessSigner:    accessSigner,
			RefreshSigner:   refreshSigner,
			RefreshVerifier: jwtx.NewVerifierHS256([]byte(testRefreshSecret), testSessionIss, jwtx.KindRefresh),
			Issuer:          testSessionIss,
			AccessTTL:       15 * time.Minute,
			RefreshTTL:      7 * 24 * time.Hour,
		},
		access: jwtx.NewVerifierHS256([]byte(testAccessSecret), testSessionIss, jwtx.KindAccess),
	}
}

// idToken signs an ID token the way the upstream provider would.
func (h *sessionHarness) idToken(t *testing.T, sub, email, name, aud string) string {
	t.Helper()
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   testIssuer,
		"aud":   aud,
		"sub":   sub,
		"email": email,
		"name":  name,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(h.key)
	require.NoError(t, err)
	return raw
}

func TestLoginCreatesUserOnce(t *testing.T) {
	ctx := testContext()
	h := newSessionHarness(t)

	u, sess, err := h.sessions.Login(ctx, h.idToken(t, "g-1", "a@example.com", "Alice", testClientID))
	require.NoError(t, err)
	require.Equal(t, "g-1", u.Subject)
	require.Equal(t, "Alice", u.Name)
	require.False(t, u.TutorialCompleted)

	claims, err := h.access.Verify(sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)
	require.True(t, sess.RefreshExpiresAt.After(sess.AccessExpiresAt))

	again, _, err := h.sessions.Login(ctx, h.idToken(t, "g-1", "alice@example.com", "Alice B", testClientID))
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)
	require.Equal(t, "alice@example.com", again.Email)
	require.Equal(t, "Alice B", again.Name)
}

func TestLoginRejectsBadIDTokens(t *testing.T) {
	ctx := testContext()
	h := newSessionHarness(t)

	_, _, err := h.sessions.Login(ctx, "")
	require.ErrorIs(t, err, service.ErrValidation)

	_, _, err = h.sessions.Login(ctx, h.idToken(t, "g-1", "a@example.com", "Alice", "someone-else"))
	require.ErrorIs(t, err, service.ErrInvalidIDToken)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	forged := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss": testIssuer, "aud": testClientID, "sub": "g-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString(other)
	require.NoError(t, err)
	_, _, err = h.sessions.Login(ctx, raw)
	require.ErrorIs(t, err, service.ErrInvalidIDToken)
}

func TestRefreshIssuesAccessToken(t *testing.T) {
	ctx := testContext()
	h := newSessionHarness(t)
	u, sess, err := h.sessions.Login(ctx, h.idToken(t, "g-1", "a@example.com", "Alice", testClientID))
	require.NoError(t, err)

	access, exp, err := h.sessions.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))
	claims, err := h.access.Verify(access)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)

	_, _, err = h.sessions.Refresh(ctx, sess.AccessToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)

	_, _, err = h.sessions.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, service.ErrInvalidRefresh)
}

func TestTutorialFlag(t *testing.T) {
	ctx := testContext()
	h := newSessionHarness(t)
	u, _, err := h.sessions.Login(ctx, h.idToken(t, "g-1", "a@example.com", "Alice", testClientID))
	require.NoError(t, err)

	require.NoError(t, h.sessions.CompleteTutorial(ctx, u.ID))
	got, err := h.sessions.Me(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.TutorialCompleted)

	_, err = h.sessions.Me(ctx, "missing")
	require.ErrorIs(t, err, service.ErrUserNotFound)
	require.ErrorIs(t, h.sessions.CompleteTutorial(ctx, "missing"), service.ErrUserNotFound)
}
