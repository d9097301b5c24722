package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListAchievements(ctx context.Context) ([]achievement.Achievement, error) {
	query := `
		SELECT id, title, description, criteria_id, is_unlocked, unlocked_at
		FROM achievements
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	var achievements []achievement.Achievement

	for rows.Next() {
		var (
			a        achievement.Achievement
			criteria string
		)

		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &criteria, &a.IsUnlocked, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}

		a.CriteriaID = achievement.CriteriaID(criteria)
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating achievement rows: %w", err)
	}

	return achievements, nil
}

// SaveAchievements upserts the whole list, keeping its order as position.
func (s *Store) SaveAchievements(ctx context.Context, achievements []achievement.Achievement) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO achievements (id, position, title, description, criteria_id, is_unlocked, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			position = EXCLUDED.position,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			criteria_id = EXCLUDED.criteria_id,
			is_unlocked = achievements.is_unlocked OR EXCLUDED.is_unlocked,
			unlocked_at = COALESCE(achievements.unlocked_at, EXCLUDED.unlocked_at)
	`

	for i, a := range achievements {
		if _, err := dbTx.ExecContext(ctx, query,
			a.ID,
			i,
			a.Title,
			a.Description,
			string(a.CriteriaID),
			a.IsUnlocked,
			a.UnlockedAt,
		); err != nil {
			return fmt.Errorf("upserting achievement %s: %w", a.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
