package domain

import "time"

// FilterPreset is a named set of filters. Titles are unique per user.
type FilterPreset struct {
	ID        string
	UserID    string
	Title     string
	Filters   Filters
	CreatedAt time.Time
}
