// Package profile implements the Profile repository using PostgreSQL.
// Nicknames are enforced unique by a database index; violations surface as
// domain.ErrAlreadyExists.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const profileColumns = `id, full_name, nickname, birth_date, birth_time, description, photos, avatar, created_at, updated_at`

const createProfileSQL = `
INSERT INTO profiles (full_name, nickname, birth_date, birth_time, description, photos, avatar)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`

const getProfileByIDSQL = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = $1`

const getProfileByNicknameSQL = `
SELECT ` + profileColumns + `
FROM profiles
WHERE nickname = $1`

const listProfilesSQL = `
SELECT ` + profileColumns + `
FROM profiles
ORDER BY created_at`

const updateProfileSQL = `
UPDATE profiles
SET full_name = $2, nickname = $3, birth_date = $4, birth_time = $5,
    description = $6, photos = $7, avatar = $8, updated_at = now()
WHERE id = $1
RETURNING updated_at`

const deleteProfileSQL = `DELETE FROM profiles WHERE id = $1`

const deleteAllProfilesSQL = `DELETE FROM profiles`

const countProfilesSQL = `SELECT COUNT(*) FROM profiles`

// Create inserts a new profile and fills in its generated ID and timestamps.
// Returns domain.ErrAlreadyExists when the nickname is taken; the store is
// left unchanged in that case.
func (r *Repo) Create(ctx context.Context, p *domain.Profile) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	photos, err := marshalPhotos(p.Photos)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	err = querier.QueryRow(ctx, createProfileSQL,
		p.FullName, p.Nickname, p.BirthDate, p.BirthTime, p.Description, photos, p.Avatar,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "profile", 0)
	}

	return nil
}

// GetByID returns a profile by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProfile(querier.QueryRow(ctx, getProfileByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}

	return p, nil
}

// GetByNickname returns a profile by its unique nickname.
// Returns domain.ErrNotFound if no profile carries that nickname.
func (r *Repo) GetByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProfile(querier.QueryRow(ctx, getProfileByNicknameSQL, nickname))
	if err != nil {
		return nil, postgres.MapError(err, "profile", 0)
	}

	return p, nil
}

// List returns all profiles ordered by creation time. Returns an empty slice
// (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listProfilesSQL)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	result := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return result, nil
}

// Update overwrites the whole profile record.
// Returns domain.ErrNotFound if the profile does not exist and
// domain.ErrAlreadyExists if the new nickname is taken by another profile.
func (r *Repo) Update(ctx context.Context, p *domain.Profile) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	photos, err := marshalPhotos(p.Photos)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	err = querier.QueryRow(ctx, updateProfileSQL,
		p.ID, p.FullName, p.Nickname, p.BirthDate, p.BirthTime, p.Description, photos, p.Avatar,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "profile", p.ID)
	}

	return nil
}

// Delete removes a profile by ID. Conversations referencing it are removed
// by the schema's ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteProfileSQL, id)
	if err != nil {
		return postgres.MapError(err, "profile", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAll removes every profile. Used by backup import.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteAllProfilesSQL)
	if err != nil {
		return 0, fmt.Errorf("delete all profiles: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// Count returns the number of stored profiles. Used by default seeding to
// decide whether the store is untouched.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, countProfilesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}

	return n, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func marshalPhotos(photos [][]byte) ([]byte, error) {
	if photos == nil {
		photos = [][]byte{}
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("marshal photos: %w", err)
	}
	return data, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p         domain.Profile
		photos    []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&p.ID, &p.FullName, &p.Nickname, &p.BirthDate, &p.BirthTime,
		&p.Description, &photos, &p.Avatar, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(photos, &p.Photos); err != nil {
		return nil, fmt.Errorf("unmarshal photos: %w", err)
	}

	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt

	return &p, nil
}
