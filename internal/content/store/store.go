package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// the sub-repositories as methods so a Tx-scoped store cannot start a nested
// transaction by accident.
type Store interface {
	Users() Users
	Contents() Contents
	Filters() Filters
	LinkedAccounts() LinkedAccounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserBySubject looks a user up by their identity provider subject.
	GetUserBySubject(ctx context.Context, subject string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// RecordLogin refreshes the profile fields and sets last_login_at.
	RecordLogin(ctx context.Context, userID, email, name string, at time.Time) error

	SetTutorialCompleted(ctx context.Context, userID string) error
}

// Contents is scoped by owner for every user-facing read and write. The
// publication writes are keyed on the record id and, where they race with
// the metrics job, on the remote post id as well.
type Contents interface {
	CreateContent(ctx context.Context, c domain.Content) error

	GetContent(ctx context.Context, userID, id string) (domain.Content, error)

	// ListContents returns the user's records, newest first.
	ListContents(ctx context.Context, userID string) ([]domain.Content, error)

	// ListFavourites returns the user's favourite records, newest first.
	ListFavourites(ctx context.Context, userID string) ([]domain.Content, error)

	// ListPublished returns every record with a publication, across users.
	ListPublished(ctx context.Context) ([]domain.Content, error)

	UpdateContent(ctx context.Context, userID, id, title, response string, at time.Time) error

	SetFavourite(ctx context.Context, userID, id string, favourite bool) error

	DeleteContent(ctx context.Context, userID, id string) error

	// SetPublication attaches a publication to an unpublished record. It
	// returns ErrAlreadyExists if the record already has one.
	SetPublication(ctx context.Context, id string, p domain.Publication, at time.Time) error

	// RecordEdit stores a successful remote edit. It returns ErrNotFound if
	// the record is no longer published as remotePostID.
	RecordEdit(ctx context.Context, id, remotePostID, title, response string, at time.Time) error

	// SyncResponse overwrites the local body with the remote one. It returns
	// ErrNotFound if the record is no longer published as remotePostID.
	SyncResponse(ctx context.Context, id, remotePostID, response string, at time.Time) error

	// ClearPublication removes the publication if it still refers to
	// remotePostID and stamps remote_deleted_at. It reports whether a row
	// changed.
	ClearPublication(ctx context.Context, id, remotePostID string, at time.Time) (bool, error)

	// UpdateMetrics overwrites the counters if the publication still refers
	// to remotePostID. It reports whether a row changed.
	UpdateMetrics(ctx context.Context, id, remotePostID string, upvotes, comments int, at time.Time) (bool, error)
}

type Filters interface {
	// CreateFilter returns ErrAlreadyExists when the user already has a
	// preset with the same title.
	CreateFilter(ctx context.Context, f domain.FilterPreset) error

	ListFilters(ctx context.Context, userID string) ([]domain.FilterPreset, error)

	DeleteFilter(ctx context.Context, userID, id string) error
}

type LinkedAccounts interface {
	GetLinkedAccount(ctx context.Context, userID string) (domain.LinkedAccount, error)

	// UpsertLinkedAccount replaces any existing link for the user.
	UpsertLinkedAccount(ctx context.Context, a domain.LinkedAccount) error

	DeleteLinkedAccount(ctx context.Context, userID string) error
}
