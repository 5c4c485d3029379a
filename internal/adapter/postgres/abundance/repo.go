// Package abundance implements the abundance transaction repository using
// PostgreSQL. The kind column is guarded by a CHECK constraint mirroring the
// domain's two transaction kinds.
package abundance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Repo provides abundance transaction persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new abundance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createTransactionSQL = `
INSERT INTO abundance_transactions (amount, concept, kind)
VALUES ($1, $2, $3)
RETURNING id, created_at`

const listTransactionsSQL = `
SELECT id, amount, concept, kind, created_at
FROM abundance_transactions
ORDER BY created_at DESC`

const deleteTransactionSQL = `DELETE FROM abundance_transactions WHERE id = $1`

const deleteAllTransactionsSQL = `DELETE FROM abundance_transactions`

const sumByKindSQL = `
SELECT
    COALESCE(SUM(amount) FILTER (WHERE kind = 'received'), 0),
    COALESCE(SUM(amount) FILTER (WHERE kind = 'shared'), 0)
FROM abundance_transactions`

// Create inserts a new transaction and fills in its ID and timestamp.
// An invalid kind violates the CHECK constraint and surfaces as
// domain.ErrValidation.
func (r *Repo) Create(ctx context.Context, tx *domain.AbundanceTransaction) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createTransactionSQL, tx.Amount, tx.Concept, tx.Kind).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "abundance_transaction", 0)
	}

	return nil
}

// List returns all transactions, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.AbundanceTransaction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list abundance transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.AbundanceTransaction{}
	for rows.Next() {
		var tx domain.AbundanceTransaction
		if err := rows.Scan(&tx.ID, &tx.Amount, &tx.Concept, &tx.Kind, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("list abundance transactions: %w", err)
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list abundance transactions: %w", err)
	}

	return result, nil
}

// Delete removes a transaction by ID.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteTransactionSQL, id)
	if err != nil {
		return postgres.MapError(err, "abundance_transaction", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("abundance_transaction %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAll removes every transaction. Used by backup import.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteAllTransactionsSQL)
	if err != nil {
		return 0, fmt.Errorf("delete all abundance transactions: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// Sum returns per-kind totals across all transactions.
func (r *Repo) Sum(ctx context.Context) (domain.AbundanceTotals, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var totals domain.AbundanceTotals
	err := querier.QueryRow(ctx, sumByKindSQL).Scan(&totals.Received, &totals.Shared)
	if err != nil {
		return domain.AbundanceTotals{}, fmt.Errorf("sum abundance transactions: %w", err)
	}

	return totals, nil
}
