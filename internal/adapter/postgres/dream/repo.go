// Package dream implements the Dream repository using PostgreSQL.
// Steps and the four-stage workflow record are stored as JSONB columns so a
// dream is always read and written as one whole record.
package dream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Repo provides dream persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dream repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const dreamColumns = `id, name, color, size, pos_x, pos_y, completed, steps, spec, created_at, updated_at`

const createDreamSQL = `
INSERT INTO dreams (name, color, size, pos_x, pos_y, completed, steps, spec)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`

const getDreamByIDSQL = `
SELECT ` + dreamColumns + `
FROM dreams
WHERE id = $1`

const updateDreamSQL = `
UPDATE dreams
SET name = $2, color = $3, size = $4, pos_x = $5, pos_y = $6,
    completed = $7, steps = $8, spec = $9, updated_at = now()
WHERE id = $1
RETURNING updated_at`

const deleteDreamSQL = `DELETE FROM dreams WHERE id = $1`

const deleteAllDreamsSQL = `DELETE FROM dreams`

// Create inserts a new dream and fills in its generated ID and timestamps.
func (r *Repo) Create(ctx context.Context, d *domain.Dream) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	steps, spec, err := marshalJSONB(d)
	if err != nil {
		return fmt.Errorf("create dream: %w", err)
	}

	err = querier.QueryRow(ctx, createDreamSQL,
		d.Name, d.Color, d.Size, d.Position.X, d.Position.Y, d.Completed, steps, spec,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "dream", 0)
	}

	return nil
}

// GetByID returns a dream by its ID.
// Returns domain.ErrNotFound if no such dream exists.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Dream, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getDreamByIDSQL, id)

	d, err := scanDream(row)
	if err != nil {
		return nil, postgres.MapError(err, "dream", id)
	}

	return d, nil
}

// List returns dreams matching the filter. Returns an empty slice (not nil)
// when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(dreamColumns).
		From("dreams")

	if f.Completed != nil {
		q = q.Where(squirrel.Eq{"completed": *f.Completed})
	}

	sortBy := f.SortBy
	switch sortBy {
	case "created_at", "updated_at", "name":
	default:
		sortBy = "created_at"
	}
	order := " ASC"
	if f.SortDesc {
		order = " DESC"
	}
	q = q.OrderBy(sortBy + order)

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list dreams query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	defer rows.Close()

	result := []domain.Dream{}
	for rows.Next() {
		d, err := scanDream(rows)
		if err != nil {
			return nil, fmt.Errorf("list dreams: %w", err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}

	return result, nil
}

// Update overwrites the whole dream record (last write wins).
// Returns domain.ErrNotFound if the dream does not exist.
func (r *Repo) Update(ctx context.Context, d *domain.Dream) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	steps, spec, err := marshalJSONB(d)
	if err != nil {
		return fmt.Errorf("update dream: %w", err)
	}

	err = querier.QueryRow(ctx, updateDreamSQL,
		d.ID, d.Name, d.Color, d.Size, d.Position.X, d.Position.Y, d.Completed, steps, spec,
	).Scan(&d.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "dream", d.ID)
	}

	return nil
}

// Delete removes a dream by ID.
// Returns domain.ErrNotFound if the dream does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteDreamSQL, id)
	if err != nil {
		return postgres.MapError(err, "dream", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dream %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAll removes every dream. Used by backup import. Returns the number
// of deleted rows.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteAllDreamsSQL)
	if err != nil {
		return 0, fmt.Errorf("delete all dreams: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func marshalJSONB(d *domain.Dream) (steps, spec []byte, err error) {
	stepsVal := d.Steps
	if stepsVal == nil {
		stepsVal = []domain.Step{}
	}
	steps, err = json.Marshal(stepsVal)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal steps: %w", err)
	}

	spec, err = json.Marshal(d.Spec)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal spec: %w", err)
	}

	return steps, spec, nil
}

func scanDream(row pgx.Row) (*domain.Dream, error) {
	var (
		d         domain.Dream
		steps     []byte
		spec      []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&d.ID, &d.Name, &d.Color, &d.Size, &d.Position.X, &d.Position.Y,
		&d.Completed, &steps, &spec, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(steps, &d.Steps); err != nil {
		return nil, fmt.Errorf("unmarshal steps: %w", err)
	}
	if err := json.Unmarshal(spec, &d.Spec); err != nil {
		return nil, fmt.Errorf("unmarshal spec: %w", err)
	}

	// Rows written before the workflow record existed come back with empty
	// stage slices; heal them on read.
	d.Spec.Normalize()

	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt

	return &d, nil
}
