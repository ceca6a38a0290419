package domain

import "time"

// State is the publication state of a content record. It is derived from the
// record and never stored.
type State string

const (
	StateUnpublished State = "unpublished"
	StatePublished   State = "published"
	StateEdited      State = "edited"
	StateDeleted     State = "deleted"
)

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

// Publication is the Reddit post a record is published as. A record has one
// exactly while the post exists, or is believed to exist, on Reddit.
type Publication struct {
	RemotePostID    string
	Upvotes         int
	Comments        int
	LastSyncedAt    time.Time  // last time local and remote content were reconciled
	EditedAt        *time.Time // last successful remote edit
	MetricsPolledAt *time.Time // last successful metrics fetch
}

type Content struct {
	ID              string
	UserID          string
	Title           string
	Prompt          string
	Response        string
	Filters         Filters
	IsFavourite     bool
	Publication     *Publication
	RemoteDeletedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c Content) Published() bool { return c.Publication != nil }

// State derives the publication state.
func (c Content) State() State {
	switch {
	case c.Publication != nil && c.Publication.EditedAt != nil:
		return StateEdited
	case c.Publication != nil:
		return StatePublished
	case c.RemoteDeletedAt != nil:
		return StateDeleted
	default:
		return StateUnpublished
	}
}
