package domain

import "time"

type User struct {
	ID                string
	Subject           string // upstream identity provider subject, unique
	Email             string
	Name              string
	TutorialCompleted bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastLoginAt       time.Time
}
