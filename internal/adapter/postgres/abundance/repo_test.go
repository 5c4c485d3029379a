package abundance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/abundance"
	"github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// The ledger is one shared table and Sum aggregates over all of it, so these
// tests run sequentially in one function instead of in parallel.
func TestRepo_Abundance(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := abundance.New(pool)
	ctx := context.Background()

	// Clean slate in case another run left rows behind.
	if _, err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	totals, err := repo.Sum(ctx)
	if err != nil {
		t.Fatalf("Sum on empty ledger: %v", err)
	}
	if totals.Received != 0 || totals.Shared != 0 {
		t.Fatalf("empty ledger totals = %+v, want zeros", totals)
	}

	for _, tx := range []domain.AbundanceTransaction{
		{Amount: 100, Concept: "salary", Kind: domain.TransactionReceived},
		{Amount: 40, Concept: "gift for mom", Kind: domain.TransactionShared},
		{Amount: 25.5, Concept: "found on the street", Kind: domain.TransactionReceived},
	} {
		tx := tx
		if err := repo.Create(ctx, &tx); err != nil {
			t.Fatalf("Create(%q): %v", tx.Concept, err)
		}
		if tx.ID == 0 || tx.CreatedAt.IsZero() {
			t.Errorf("Create(%q) did not fill ID/CreatedAt: %+v", tx.Concept, tx)
		}
	}

	totals, err = repo.Sum(ctx)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if totals.Received != 125.5 {
		t.Errorf("Received = %v, want 125.5", totals.Received)
	}
	if totals.Shared != 40 {
		t.Errorf("Shared = %v, want 40", totals.Shared)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d transactions, want 3", len(list))
	}

	// Kind is guarded by a CHECK constraint.
	bad := &domain.AbundanceTransaction{Amount: 1, Concept: "x", Kind: "donated"}
	if err := repo.Create(ctx, bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Create with bad kind = %v, want ErrValidation", err)
	}

	if err := repo.Delete(ctx, list[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, list[0].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}

	n, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteAll removed %d rows, want 2", n)
	}
}
