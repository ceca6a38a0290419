package sqlite

import (
	"context"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
)

type linkedAccountsRepo struct {
	db dbtx
}

func (r *linkedAccountsRepo) GetLinkedAccount(ctx context.Context, userID string) (domain.LinkedAccount, error) {
	var a domain.LinkedAccount
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, username, refresh_token_sealed, created_at, updated_at
		FROM linked_accounts WHERE user_id = ?`, userID,
	).Scan(&a.UserID, &a.Username, &a.RefreshTokenSealed, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.LinkedAccount{}, mapNotFound(err)
	}
	return a, nil
}

func (r *linkedAccountsRepo) UpsertLinkedAccount(ctx context.Context, a domain.LinkedAccount) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO linked_accounts (user_id, username, refresh_token_sealed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			refresh_token_sealed = excluded.refresh_token_sealed,
			updated_at = excluded.updated_at`,
		a.UserID, a.Username, a.RefreshTokenSealed, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *linkedAccountsRepo) DeleteLinkedAccount(ctx context.Context, userID string) error {
	return requireRow(r.db.ExecContext(ctx,
		`DELETE FROM linked_accounts WHERE user_id = ?`, userID))
}
