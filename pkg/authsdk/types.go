package authsdk

import "time"

// ============================================================================
// Session
// ============================================================================

// LoginRequest carries the upstream identity provider's ID token.
type LoginRequest struct {
	IDToken string `json:"id_token"`
}

// User is the authenticated account.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	TutorialCompleted bool      `json:"tutorial_completed"`
	CreatedAt         time.Time `json:"created_at"`
	LastLoginAt       time.Time `json:"last_login_at"`
}

type LoginResponse struct {
	User User `json:"user"`
}

// SessionResponse is returned by the auth check.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
	User          User `json:"user"`
}

type RefreshResponse struct {
	// ExpiresIn is the new access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
}

type TutorialStatus struct {
	Completed bool `json:"completed"`
}

// ============================================================================
// Content
// ============================================================================

// Filters are the generation parameters a piece of content was produced with.
type Filters struct {
	ContentType      string   `json:"content_type,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	AgeRange         string   `json:"age_range,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	IncomeLevel      string   `json:"income_level,omitempty"`
	Tone             string   `json:"tone,omitempty"`
	Themes           []string `json:"themes,omitempty"`
	ContentGoal      string   `json:"content_goal,omitempty"`
	MaxContentLength string   `json:"max_content_length,omitempty"`
	Language         string   `json:"language,omitempty"`
}

// Publication state values.
const (
	StateUnpublished = "unpublished"
	StatePublished   = "published"
	StateEdited      = "edited"
	StateDeleted     = "deleted"
)

// Publication describes the Reddit post a record is published as.
type Publication struct {
	PostID          string     `json:"post_id"`
	Upvotes         int        `json:"upvotes"`
	Comments        int        `json:"comments"`
	LastSyncedAt    time.Time  `json:"last_synced_at"`
	EditedAt        *time.Time `json:"edited_at,omitempty"`
	MetricsPolledAt *time.Time `json:"metrics_polled_at,omitempty"`
}

type Content struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Prompt          string       `json:"prompt"`
	Response        string       `json:"response"`
	Filters         Filters      `json:"filters"`
	IsFavourite     bool         `json:"is_favourite"`
	State           string       `json:"state"`
	Reddit          *Publication `json:"reddit"`
	RemoteDeletedAt *time.Time   `json:"remote_deleted_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type SaveContentRequest struct {
	Title    string  `json:"title"`
	Prompt   string  `json:"prompt"`
	Response string  `json:"response"`
	Filters  Filters `json:"filters"`
}

// UpdateContentRequest edits the local title and body. It is also the body of
// a Reddit edit.
type UpdateContentRequest struct {
	Title    string `json:"title"`
	Response string `json:"response"`
}

type ContentList struct {
	Contents []Content `json:"contents"`
}

type FavouriteResponse struct {
	IsFavourite bool `json:"is_favourite"`
}

type FavouritesResponse struct {
	Favourites []Content      `json:"favourites"`
	Filters    []FilterPreset `json:"filters"`
}

// ============================================================================
// Filter presets
// ============================================================================

type FilterPreset struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Filters   Filters   `json:"filters"`
	CreatedAt time.Time `json:"created_at"`
}

type FilterList struct {
	Filters []FilterPreset `json:"filters"`
}

type SaveFilterRequest struct {
	Title   string  `json:"title"`
	Filters Filters `json:"filters"`
}

// ============================================================================
// Reddit
// ============================================================================

type RedditAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type RedditLinkRequest struct {
	Code string `json:"code"`
}

type RedditLinkStatus struct {
	Linked        bool   `json:"linked"`
	Username      string `json:"username,omitempty"`
	AlreadyLinked bool   `json:"already_linked,omitempty"`
}

// FetchPostResponse is the result of pulling the latest remote state.
type FetchPostResponse struct {
	Title    string  `json:"title"`
	Response string  `json:"response"`
	Updated  bool    `json:"updated"`
	Content  Content `json:"content"`
}

// SweepReport summarises one metrics reconciliation pass.
type SweepReport struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Scanned    int       `json:"scanned"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Gone       int       `json:"gone"`
	Failed     int       `json:"failed"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the dependencies /readyz looked at.
type HealthChecks struct {
	Database string `json:"database"`
}
