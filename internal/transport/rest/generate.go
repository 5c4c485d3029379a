package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// textGenerator and imageGenerator define the generation client surface
// exposed through the relay endpoints.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string, expectJSON bool) (string, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, refImages []domain.ImageRef) (*domain.ImageRef, error)
}

// GenerateHandler relays free-form generation requests to the upstream
// service so the client never holds the API key. Request bodies may carry
// reference images inline and are size-capped.
type GenerateHandler struct {
	text         textGenerator
	image        imageGenerator
	maxBodyBytes int64
	log          *slog.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(text textGenerator, image imageGenerator, maxBodyBytes int64, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		text:         text,
		image:        image,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "generate"),
	}
}

type generateTextRequest struct {
	Prompt     string `json:"prompt"`
	ExpectJSON bool   `json:"expectJson"`
}

type generateTextResponse struct {
	Text string `json:"text"`
}

type generateImageRequest struct {
	Prompt string            `json:"prompt"`
	Images []domain.ImageRef `json:"images"`
}

// Text handles POST /api/generate-text.
func (h *GenerateHandler) Text(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req generateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		handleError(w, r, h.log, domain.NewValidationError("prompt", "required"))
		return
	}

	text, err := h.text.GenerateText(r.Context(), req.Prompt, req.ExpectJSON)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, generateTextResponse{Text: text})
}

// Image handles POST /api/generate-image.
func (h *GenerateHandler) Image(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		handleError(w, r, h.log, domain.NewValidationError("prompt", "required"))
		return
	}

	img, err := h.image.GenerateImage(r.Context(), req.Prompt, req.Images)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, img)
}
