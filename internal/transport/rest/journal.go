package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	Create(ctx context.Context, input journal.CreateInput) (*domain.JournalEntry, error)
	List(ctx context.Context) ([]domain.JournalEntry, error)
	Delete(ctx context.Context, id int64) error
}

// JournalHandler serves journal REST endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type createEntryRequest struct {
	Text      string `json:"text"`
	Mood      string `json:"mood"`
	Gratitude bool   `json:"gratitude"`
}

type entryResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Mood      string    `json:"mood"`
	Gratitude bool      `json:"gratitude"`
	CreatedAt time.Time `json:"createdAt"`
}

func toEntryResponse(e *domain.JournalEntry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Text:      e.Text,
		Mood:      e.Mood,
		Gratitude: e.Gratitude,
		CreatedAt: e.CreatedAt,
	}
}

// Create handles POST /api/journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.Create(r.Context(), journal.CreateInput{
		Text:      req.Text,
		Mood:      req.Mood,
		Gratitude: req.Gratitude,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

// List handles GET /api/journal.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toEntryResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/journal/{id}.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
