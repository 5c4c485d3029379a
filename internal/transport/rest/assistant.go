package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/pkg/ctxutil"
)

// assistantService defines the minimal interface needed by AssistantHandler.
type assistantService interface {
	Start(ctx context.Context, profileID int64) (*domain.Conversation, error)
	List(ctx context.Context, profileID int64) ([]domain.Conversation, error)
	Get(ctx context.Context, id int64) (*domain.Conversation, error)
	SendMessage(ctx context.Context, conversationID int64, text, viewContext string) (*domain.Conversation, error)
	Delete(ctx context.Context, id int64) error
}

// AssistantHandler serves the guided-help conversation endpoints. All
// conversation listing and creation happens on behalf of the active
// profile from the X-Active-Profile header.
type AssistantHandler struct {
	svc assistantService
	log *slog.Logger
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(svc assistantService, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{svc: svc, log: logger.With("handler", "assistant")}
}

type sendMessageRequest struct {
	Text string `json:"text"`
	// Context is an optional JSON snapshot of the client's current view,
	// forwarded verbatim into the assistant prompt.
	Context json.RawMessage `json:"context,omitempty"`
}

type conversationResponse struct {
	ID        int64                `json:"id"`
	ProfileID int64                `json:"profileId"`
	Messages  []domain.ChatMessage `json:"messages"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func toConversationResponse(c *domain.Conversation) conversationResponse {
	messages := c.Messages
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return conversationResponse{
		ID:        c.ID,
		ProfileID: c.ProfileID,
		Messages:  messages,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func activeProfile(r *http.Request) (int64, error) {
	id, ok := ctxutil.ProfileIDFromCtx(r.Context())
	if !ok {
		return 0, domain.NewValidationError("profile", "X-Active-Profile header required")
	}
	return id, nil
}

// Start handles POST /api/conversations.
func (h *AssistantHandler) Start(w http.ResponseWriter, r *http.Request) {
	profileID, err := activeProfile(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	c, err := h.svc.Start(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toConversationResponse(c))
}

// List handles GET /api/conversations.
func (h *AssistantHandler) List(w http.ResponseWriter, r *http.Request) {
	profileID, err := activeProfile(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	conversations, err := h.svc.List(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]conversationResponse, 0, len(conversations))
	for i := range conversations {
		resp = append(resp, toConversationResponse(&conversations[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/conversations/{id}.
func (h *AssistantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toConversationResponse(c))
}

// SendMessage handles POST /api/conversations/{id}/messages.
func (h *AssistantHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	viewContext := string(req.Context)
	if viewContext == "null" {
		viewContext = ""
	}

	c, err := h.svc.SendMessage(r.Context(), id, req.Text, viewContext)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toConversationResponse(c))
}

// Delete handles DELETE /api/conversations/{id}.
func (h *AssistantHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
