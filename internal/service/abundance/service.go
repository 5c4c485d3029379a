// Package abundance implements the abundance ledger: received and shared
// amounts with per-kind totals.
package abundance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const MaxConceptLen = 500

type transactionRepo interface {
	Create(ctx context.Context, tx *domain.AbundanceTransaction) error
	List(ctx context.Context) ([]domain.AbundanceTransaction, error)
	Delete(ctx context.Context, id int64) error
	Sum(ctx context.Context) (domain.AbundanceTotals, error)
}

// Service provides abundance ledger operations.
type Service struct {
	transactions transactionRepo
	log          *slog.Logger
}

// NewService creates a new Abundance service.
func NewService(
	log *slog.Logger,
	transactions transactionRepo,
) *Service {
	return &Service{
		transactions: transactions,
		log:          log.With("service", "abundance"),
	}
}

// CreateInput holds the parameters for recording a transaction.
type CreateInput struct {
	Amount  float64
	Concept string
	Kind    domain.TransactionKind
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be received or shared"})
	}
	if len(i.Concept) > MaxConceptLen {
		errs = append(errs, domain.FieldError{Field: "concept", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create records a transaction in the ledger.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.AbundanceTransaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tx := &domain.AbundanceTransaction{
		Amount:  input.Amount,
		Concept: strings.TrimSpace(input.Concept),
		Kind:    input.Kind,
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create abundance transaction: %w", err)
	}

	s.log.InfoContext(ctx, "abundance transaction recorded",
		slog.Int64("transaction_id", tx.ID),
		slog.String("kind", string(tx.Kind)),
		slog.Float64("amount", tx.Amount),
	)

	return tx, nil
}

// List returns all transactions, newest first.
func (s *Service) List(ctx context.Context) ([]domain.AbundanceTransaction, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list abundance transactions: %w", err)
	}
	return txs, nil
}

// Delete removes a transaction from the ledger.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete abundance transaction: %w", err)
	}
	return nil
}

// Totals returns the per-kind sums for the whole ledger.
func (s *Service) Totals(ctx context.Context) (domain.AbundanceTotals, error) {
	totals, err := s.transactions.Sum(ctx)
	if err != nil {
		return domain.AbundanceTotals{}, fmt.Errorf("sum abundance transactions: %w", err)
	}
	return totals, nil
}
