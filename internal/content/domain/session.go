package domain

import "time"

// Session is a signed access and refresh token pair. Both are stateless JWTs;
// the refresh token only changes on login.
type Session struct {
	UserID           string
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
