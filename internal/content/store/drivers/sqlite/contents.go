package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
)

type contentsRepo struct {
	db dbtx
}

const contentColumns = `id, user_id, title, prompt, response, filters, is_favourite,
	remote_post_id, upvotes, comments, last_synced_at, edited_at, metrics_polled_at,
	remote_deleted_at, created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }) (domain.Content, error) {
	var (
		c                          domain.Content
		filters                    string
		postID                     sql.NullString
		upvotes, comments          int
		synced, edited, polled, rm sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Prompt, &c.Response, &filters, &c.IsFavourite,
		&postID, &upvotes, &comments, &synced, &edited, &polled,
		&rm, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Content{}, err
	}
	if err := json.Unmarshal([]byte(filters), &c.Filters); err != nil {
		return domain.Content{}, fmt.Errorf("decode filters for %s: %w", c.ID, err)
	}
	if postID.Valid {
		c.Publication = &domain.Publication{
			RemotePostID:    postID.String,
			Upvotes:         upvotes,
			Comments:        comments,
			LastSyncedAt:    synced.Time,
			EditedAt:        mapNullTimePtr(edited),
			MetricsPolledAt: mapNullTimePtr(polled),
		}
	}
	c.RemoteDeletedAt = mapNullTimePtr(rm)
	return c, nil
}

func (r *contentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Content, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contentsRepo) CreateContent(ctx context.Context, c domain.Content) error {
	filters, err := json.Marshal(c.Filters)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO contents (id, user_id, title, prompt, response, filters, is_favourite, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.Prompt, c.Response, string(filters), c.IsFavourite,
		c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *contentsRepo) GetContent(ctx context.Context, userID, id string) (domain.Content, error) {
	c, err := scanContent(r.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return domain.Content{}, mapNotFound(err)
	}
	return c, nil
}

func (r *contentsRepo) ListContents(ctx context.Context, userID string) ([]domain.Content, error) {
	return r.list(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE user_id = ? ORDER BY id DESC`, userID)
}

func (r *contentsRepo) ListFavourites(ctx context.Context, userID string) ([]domain.Content, error) {
	return r.list(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE user_id = ? AND is_favourite = 1 ORDER BY id DESC`, userID)
}

func (r *contentsRepo) ListPublished(ctx context.Context) ([]domain.Content, error) {
	return r.list(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE remote_post_id IS NOT NULL ORDER BY id`)
}

func (r *contentsRepo) UpdateContent(ctx context.Context, userID, id, title, response string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE contents SET title = ?, response = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		title, response, at.UTC(), id, userID,
	))
}

func (r *contentsRepo) SetFavourite(ctx context.Context, userID, id string, favourite bool) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE contents SET is_favourite = ? WHERE id = ? AND user_id = ?`,
		favourite, id, userID,
	))
}

func (r *contentsRepo) DeleteContent(ctx context.Context, userID, id string) error {
	return requireRow(r.db.ExecContext(ctx,
		`DELETE FROM contents WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *contentsRepo) SetPublication(ctx context.Context, id string, p domain.Publication, at time.Time) error {
	changed, err := affected(r.db.ExecContext(ctx, `
		UPDATE contents SET
			remote_post_id = ?, upvotes = ?, comments = ?, last_synced_at = ?,
			edited_at = NULL, metrics_polled_at = NULL, remote_deleted_at = NULL, updated_at = ?
		WHERE id = ? AND remote_post_id IS NULL`,
		p.RemotePostID, p.Upvotes, p.Comments, p.LastSyncedAt.UTC(), at.UTC(), id,
	))
	if err != nil || changed {
		return err
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM contents WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return store.ErrAlreadyExists
}

func (r *contentsRepo) RecordEdit(ctx context.Context, id, remotePostID, title, response string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE contents SET title = ?, response = ?, last_synced_at = ?, edited_at = ?, updated_at = ?
		WHERE id = ? AND remote_post_id = ?`,
		title, response, at.UTC(), at.UTC(), at.UTC(), id, remotePostID,
	))
}

func (r *contentsRepo) SyncResponse(ctx context.Context, id, remotePostID, response string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE contents SET response = ?, last_synced_at = ?, updated_at = ?
		WHERE id = ? AND remote_post_id = ?`,
		response, at.UTC(), at.UTC(), id, remotePostID,
	))
}

func (r *contentsRepo) ClearPublication(ctx context.Context, id, remotePostID string, at time.Time) (bool, error) {
	return affected(r.db.ExecContext(ctx, `
		UPDATE contents SET
			remote_post_id = NULL, upvotes = 0, comments = 0, last_synced_at = NULL,
			edited_at = NULL, metrics_polled_at = NULL, remote_deleted_at = ?, updated_at = ?
		WHERE id = ? AND remote_post_id = ?`,
		at.UTC(), at.UTC(), id, remotePostID,
	))
}

func (r *contentsRepo) UpdateMetrics(
	ctx context.Context,
	id, remotePostID string,
	upvotes, comments int,
	at time.Time,
) (bool, error) {
	return affected(r.db.ExecContext(ctx, `
		UPDATE contents SET upvotes = ?, comments = ?, metrics_polled_at = ?
		WHERE id = ? AND remote_post_id = ?`,
		upvotes, comments, at.UTC(), id, remotePostID,
	))
}
