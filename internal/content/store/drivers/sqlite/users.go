package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, subject, email, name, tutorial_completed, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &u.TutorialCompleted,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserBySubject(ctx context.Context, subject string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE subject = ?`, subject))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, subject, email, name, tutorial_completed, created_at, updated_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Subject, u.Email, u.Name, u.TutorialCompleted,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(), u.LastLoginAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) RecordLogin(ctx context.Context, userID, email, name string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE users SET email = ?, name = ?, last_login_at = ?, updated_at = ?
		WHERE id = ?`,
		email, name, at.UTC(), at.UTC(), userID,
	))
}

func (r *usersRepo) SetTutorialCompleted(ctx context.Context, userID string) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE users SET tutorial_completed = 1 WHERE id = ?`, userID))
}
