// Package settings implements the settings repository using PostgreSQL.
// Settings is a single-row table keyed by a fixed ID; writes go through an
// upsert so the row springs into existence on first save.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSettingsSQL = `
SELECT id, slideshow_duration, first_visit_done, gamification, updated_at
FROM settings
WHERE id = $1`

const upsertSettingsSQL = `
INSERT INTO settings (id, slideshow_duration, first_visit_done, gamification, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (id) DO UPDATE
SET slideshow_duration = EXCLUDED.slideshow_duration,
    first_visit_done   = EXCLUDED.first_visit_done,
    gamification       = EXCLUDED.gamification,
    updated_at         = now()
RETURNING updated_at`

const deleteSettingsSQL = `DELETE FROM settings WHERE id = $1`

// Get returns the settings record.
// Returns domain.ErrNotFound when no settings row has been written yet;
// callers fall back to domain.DefaultSettings.
func (r *Repo) Get(ctx context.Context) (*domain.Settings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		s            domain.Settings
		gamification []byte
	)

	err := querier.QueryRow(ctx, getSettingsSQL, domain.SettingsID).
		Scan(&s.ID, &s.SlideshowDuration, &s.FirstVisitDone, &gamification, &s.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "settings", domain.SettingsID)
	}

	if err := json.Unmarshal(gamification, &s.Gamification); err != nil {
		return nil, fmt.Errorf("unmarshal gamification: %w", err)
	}
	if s.Gamification.Achievements == nil {
		s.Gamification.Achievements = []string{}
	}

	return &s, nil
}

// Upsert writes the whole settings record, creating the row if needed.
// The ID is forced to the fixed settings key regardless of input.
func (r *Repo) Upsert(ctx context.Context, s *domain.Settings) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s.ID = domain.SettingsID

	gamification, err := json.Marshal(s.Gamification)
	if err != nil {
		return fmt.Errorf("marshal gamification: %w", err)
	}

	err = querier.QueryRow(ctx, upsertSettingsSQL,
		s.ID, s.SlideshowDuration, s.FirstVisitDone, gamification,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "settings", s.ID)
	}

	return nil
}

// Delete removes the settings row. Used by backup import before restoring.
// Not an error if the row does not exist.
func (r *Repo) Delete(ctx context.Context) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSettingsSQL, domain.SettingsID); err != nil {
		return postgres.MapError(err, "settings", domain.SettingsID)
	}

	return nil
}
