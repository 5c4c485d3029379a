package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/internal/service/abundance"
)

// abundanceService defines the minimal interface needed by AbundanceHandler.
type abundanceService interface {
	Create(ctx context.Context, input abundance.CreateInput) (*domain.AbundanceTransaction, error)
	List(ctx context.Context) ([]domain.AbundanceTransaction, error)
	Delete(ctx context.Context, id int64) error
	Totals(ctx context.Context) (domain.AbundanceTotals, error)
}

// AbundanceHandler serves abundance ledger REST endpoints.
type AbundanceHandler struct {
	svc abundanceService
	log *slog.Logger
}

// NewAbundanceHandler creates an AbundanceHandler.
func NewAbundanceHandler(svc abundanceService, logger *slog.Logger) *AbundanceHandler {
	return &AbundanceHandler{svc: svc, log: logger.With("handler", "abundance")}
}

type createTransactionRequest struct {
	Amount  float64 `json:"amount"`
	Concept string  `json:"concept"`
	Kind    string  `json:"kind"`
}

type transactionResponse struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Concept   string    `json:"concept"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

type totalsResponse struct {
	Received float64 `json:"received"`
	Shared   float64 `json:"shared"`
	Balance  float64 `json:"balance"`
}

func toTransactionResponse(tx *domain.AbundanceTransaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Concept:   tx.Concept,
		Kind:      string(tx.Kind),
		CreatedAt: tx.CreatedAt,
	}
}

// Create handles POST /api/abundance.
func (h *AbundanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.svc.Create(r.Context(), abundance.CreateInput{
		Amount:  req.Amount,
		Concept: req.Concept,
		Kind:    domain.TransactionKind(req.Kind),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// List handles GET /api/abundance.
func (h *AbundanceHandler) List(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for i := range txs {
		resp = append(resp, toTransactionResponse(&txs[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Totals handles GET /api/abundance/totals.
func (h *AbundanceHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.Totals(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, totalsResponse{
		Received: totals.Received,
		Shared:   totals.Shared,
		Balance:  totals.Balance(),
	})
}

// Delete handles DELETE /api/abundance/{id}.
func (h *AbundanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
