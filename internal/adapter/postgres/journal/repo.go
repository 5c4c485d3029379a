// Package journal implements the journal entry repository using PostgreSQL.
package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Repo provides journal entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new journal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createEntrySQL = `
INSERT INTO journal_entries (text, mood, gratitude)
VALUES ($1, $2, $3)
RETURNING id, created_at`

const listEntriesSQL = `
SELECT id, text, mood, gratitude, created_at
FROM journal_entries
ORDER BY created_at DESC`

const deleteEntrySQL = `DELETE FROM journal_entries WHERE id = $1`

const deleteAllEntriesSQL = `DELETE FROM journal_entries`

// Create inserts a new journal entry and fills in its ID and timestamp.
func (r *Repo) Create(ctx context.Context, e *domain.JournalEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createEntrySQL, e.Text, e.Mood, e.Gratitude).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "journal_entry", 0)
	}

	return nil
}

// List returns all journal entries, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.JournalEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	result := []domain.JournalEntry{}
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.Text, &e.Mood, &e.Gratitude, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list journal entries: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	return result, nil
}

// Delete removes an entry by ID.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteEntrySQL, id)
	if err != nil {
		return postgres.MapError(err, "journal_entry", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal_entry %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAll removes every journal entry. Used by backup import.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteAllEntriesSQL)
	if err != nil {
		return 0, fmt.Errorf("delete all journal entries: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
