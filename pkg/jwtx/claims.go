package jwtx

import (
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Default session lifetimes. The access token lives in a short cookie and is
// reissued by the refresh endpoint; the refresh token only rotates on login.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenKind separates access tokens from refresh tokens. They are signed with
// different secrets as well, but the claim makes misuse obvious in logs.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims are the session claims carried by both cookies.
type Claims struct {
	jwt.RegisteredClaims

	// Kind is "access" or "refresh".
	Kind TokenKind `json:"typ"`

	// Name is the display name of the user, handy for the auth check.
	Name string `json:"name,omitempty"`
}

// NewSessionClaims builds claims for a user session token.
func NewSessionClaims(
	subject string,
	kind TokenKind,
	name string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Kind: kind,
		Name: name,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	jti, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return ""
	}
	return jti
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateKind ensures a refresh token is never accepted where an access
// token is expected, and the other way round.
func (c *Claims) ValidateKind(expected TokenKind) error {
	if c.Kind != expected {
		return ErrKind
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
