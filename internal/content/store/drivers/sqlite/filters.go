package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/contentdeck/internal/content/domain"
)

type filtersRepo struct {
	db dbtx
}

func (r *filtersRepo) CreateFilter(ctx context.Context, f domain.FilterPreset) error {
	filters, err := json.Marshal(f.Filters)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO filter_presets (id, user_id, title, filters, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.Title, string(filters), f.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *filtersRepo) ListFilters(ctx context.Context, userID string) ([]domain.FilterPreset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, filters, created_at
		FROM filter_presets WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.FilterPreset{}
	for rows.Next() {
		var (
			f       domain.FilterPreset
			filters string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.Title, &filters, &f.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(filters), &f.Filters); err != nil {
			return nil, fmt.Errorf("decode filters for %s: %w", f.ID, err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *filtersRepo) DeleteFilter(ctx context.Context, userID, id string) error {
	return requireRow(r.db.ExecContext(ctx,
		`DELETE FROM filter_presets WHERE id = ? AND user_id = ?`, id, userID))
}
