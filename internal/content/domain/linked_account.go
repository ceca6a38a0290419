package domain

import "time"

// LinkedAccount is a user's Reddit authorization. The refresh token is stored
// sealed and never leaves the server.
type LinkedAccount struct {
	UserID             string
	Username           string
	RefreshTokenSealed []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
