package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/internal/service/spec"
	"github.com/heartmarshall/dreamboard-backend/pkg/ctxutil"
)

// specService defines the minimal interface needed by SpecHandler.
type specService interface {
	SaveStageNotes(ctx context.Context, dreamID int64, stage domain.StageKey, notes string) (*domain.Dream, error)
	AddImages(ctx context.Context, dreamID int64, stage domain.StageKey, images []domain.ImageRef) (*spec.AddImagesResult, error)
	RemoveImage(ctx context.Context, dreamID int64, stage domain.StageKey, index int) (*domain.Dream, error)
	GenerateImages(ctx context.Context, input spec.GenerateInput) (*spec.GenerateResult, error)
}

// SpecHandler serves the per-stage workflow endpoints of a dream.
type SpecHandler struct {
	svc specService
	log *slog.Logger
}

// NewSpecHandler creates a SpecHandler.
func NewSpecHandler(svc specService, logger *slog.Logger) *SpecHandler {
	return &SpecHandler{svc: svc, log: logger.With("handler", "spec")}
}

type saveNotesRequest struct {
	Notes string `json:"notes"`
}

type addImagesRequest struct {
	Images []domain.ImageRef `json:"images"`
}

type addImagesResponse struct {
	Dream   dreamResponse `json:"dream"`
	Added   int           `json:"added"`
	Skipped int           `json:"skipped"`
}

type generateImagesRequest struct {
	Count int `json:"count"`
}

type fallbackResponse struct {
	Stage  domain.StageKey  `json:"stage"`
	Image  *domain.ImageRef `json:"image,omitempty"`
	Prompt string           `json:"prompt"`
}

type generateImagesResponse struct {
	Dream    dreamResponse     `json:"dream"`
	Appended []domain.ImageRef `json:"appended,omitempty"`
	Fallback *fallbackResponse `json:"fallback,omitempty"`
}

// SaveNotes handles PUT /api/dreams/{id}/spec/{stage}/notes.
func (h *SpecHandler) SaveNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	stage, err := pathStage(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req saveNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.SaveStageNotes(r.Context(), id, stage, req.Notes)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// AddImages handles POST /api/dreams/{id}/spec/{stage}/images.
func (h *SpecHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	stage, err := pathStage(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req addImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.AddImages(r.Context(), id, stage, req.Images)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, addImagesResponse{
		Dream:   toDreamResponse(result.Dream),
		Added:   result.Added,
		Skipped: result.Skipped,
	})
}

// RemoveImage handles DELETE /api/dreams/{id}/spec/{stage}/images/{index}.
func (h *SpecHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	stage, err := pathStage(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("index", "must be an integer"))
		return
	}

	d, err := h.svc.RemoveImage(r.Context(), id, stage, index)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// Generate handles POST /api/dreams/{id}/spec/{stage}/generate.
// A failed batch is not an error: the response carries a fallback plan
// instead of appended images.
func (h *SpecHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	stage, err := pathStage(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req generateImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := ctxutil.ProfileIDFromCtx(r.Context())

	result, err := h.svc.GenerateImages(r.Context(), spec.GenerateInput{
		DreamID:   id,
		Stage:     stage,
		Count:     req.Count,
		ProfileID: profileID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := generateImagesResponse{
		Dream:    toDreamResponse(result.Dream),
		Appended: result.Appended,
	}
	if result.Fallback != nil {
		resp.Fallback = &fallbackResponse{
			Stage:  result.Fallback.Stage,
			Image:  result.Fallback.Image,
			Prompt: result.Fallback.Prompt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
