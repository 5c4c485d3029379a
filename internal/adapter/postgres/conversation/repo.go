// Package conversation implements the assistant conversation repository
// using PostgreSQL. Message history is stored as a JSONB column; lookups by
// profile go through a non-unique index on profile_id.
package conversation

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

// Repo provides conversation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new conversation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const conversationColumns = `id, profile_id, messages, created_at, updated_at`

const createConversationSQL = `
INSERT INTO conversations (profile_id, messages)
VALUES ($1, $2)
RETURNING id, created_at, updated_at`

const getConversationByIDSQL = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE id = $1`

const listByProfileSQL = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE profile_id = $1
ORDER BY updated_at DESC`

const updateMessagesSQL = `
UPDATE conversations
SET messages = $2, updated_at = now()
WHERE id = $1
RETURNING updated_at`

const deleteConversationSQL = `DELETE FROM conversations WHERE id = $1`

const deleteAllConversationsSQL = `DELETE FROM conversations`

// Create inserts a new conversation and fills in its ID and timestamps.
// Returns domain.ErrNotFound if the referenced profile does not exist.
func (r *Repo) Create(ctx context.Context, c *domain.Conversation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	messages, err := marshalMessages(c.Messages)
	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}

	err = querier.QueryRow(ctx, createConversationSQL, c.ProfileID, messages).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "conversation", 0)
	}

	return nil
}

// GetByID returns a conversation by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanConversation(querier.QueryRow(ctx, getConversationByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "conversation", id)
	}

	return c, nil
}

// ListByProfile returns all conversations for a profile, most recently
// updated first. Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Conversation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByProfileSQL, profileID)
	if err != nil {
		return nil, fmt.Errorf("list conversations by profile: %w", err)
	}
	defer rows.Close()

	result := []domain.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("list conversations by profile: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations by profile: %w", err)
	}

	return result, nil
}

// UpdateMessages replaces the conversation's message history.
func (r *Repo) UpdateMessages(ctx context.Context, c *domain.Conversation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	messages, err := marshalMessages(c.Messages)
	if err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}

	err = querier.QueryRow(ctx, updateMessagesSQL, c.ID, messages).Scan(&c.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "conversation", c.ID)
	}

	return nil
}

// Delete removes a conversation by ID.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteConversationSQL, id)
	if err != nil {
		return postgres.MapError(err, "conversation", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conversation %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAll removes every conversation. Used by backup import.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteAllConversationsSQL)
	if err != nil {
		return 0, fmt.Errorf("delete all conversations: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func marshalMessages(messages []domain.ChatMessage) ([]byte, error) {
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("marshal messages: %w", err)
	}
	return data, nil
}

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var (
		c         domain.Conversation
		messages  []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&c.ID, &c.ProfileID, &messages, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(messages, &c.Messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}

	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt

	return &c, nil
}
