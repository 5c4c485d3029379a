package domain

import "time"

// TransactionKind classifies an abundance ledger movement.
type TransactionKind string

const (
	TransactionReceived TransactionKind = "received"
	TransactionShared   TransactionKind = "shared"
)

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return k == TransactionReceived || k == TransactionShared
}

// AbundanceTransaction is one movement in the personal abundance ledger.
type AbundanceTransaction struct {
	ID        int64
	Amount    float64 // always positive; Kind gives the direction
	Concept   string
	Kind      TransactionKind
	CreatedAt time.Time
}

// AbundanceTotals aggregates ledger amounts per kind.
type AbundanceTotals struct {
	Received float64
	Shared   float64
}

// Balance is the received sum minus the shared sum.
func (t AbundanceTotals) Balance() float64 {
	return t.Received - t.Shared
}
