package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/internal/service/dream"
)

// dreamService defines the minimal interface needed by DreamHandler.
type dreamService interface {
	Create(ctx context.Context, input dream.CreateInput) (*domain.Dream, error)
	Get(ctx context.Context, id int64) (*domain.Dream, error)
	List(ctx context.Context, input dream.ListInput) ([]domain.Dream, error)
	Update(ctx context.Context, id int64, input dream.UpdateInput) (*domain.Dream, error)
	Rename(ctx context.Context, id int64, name string) (*domain.Dream, error)
	Delete(ctx context.Context, id int64) error
	AddStep(ctx context.Context, id int64, text string) (*domain.Dream, error)
	ToggleStep(ctx context.Context, id int64, index int) (*domain.Dream, error)
	Fulfill(ctx context.Context, id int64) (*domain.Dream, error)
}

// DreamHandler serves dream REST endpoints.
type DreamHandler struct {
	svc dreamService
	log *slog.Logger
}

// NewDreamHandler creates a DreamHandler.
func NewDreamHandler(svc dreamService, logger *slog.Logger) *DreamHandler {
	return &DreamHandler{svc: svc, log: logger.With("handler", "dream")}
}

type createDreamRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

type updateDreamRequest struct {
	Name     *string          `json:"name"`
	Color    *string          `json:"color"`
	Size     *int             `json:"size"`
	Position *domain.Position `json:"position"`
}

type renameDreamRequest struct {
	Name string `json:"name"`
}

type addStepRequest struct {
	Text string `json:"text"`
}

type dreamResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Size      int             `json:"size"`
	Position  domain.Position `json:"position"`
	Completed bool            `json:"completed"`
	Steps     []domain.Step   `json:"steps"`
	Spec      domain.Spec     `json:"spec"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toDreamResponse(d *domain.Dream) dreamResponse {
	steps := d.Steps
	if steps == nil {
		steps = []domain.Step{}
	}
	return dreamResponse{
		ID:        d.ID,
		Name:      d.Name,
		Color:     d.Color,
		Size:      d.Size,
		Position:  d.Position,
		Completed: d.Completed,
		Steps:     steps,
		Spec:      d.Spec,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Create handles POST /api/dreams.
func (h *DreamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Create(r.Context(), dream.CreateInput{
		Name:  req.Name,
		Color: req.Color,
		Size:  req.Size,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDreamResponse(d))
}

// Get handles GET /api/dreams/{id}.
func (h *DreamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// List handles GET /api/dreams.
func (h *DreamHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	dreams, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]dreamResponse, 0, len(dreams))
	for i := range dreams {
		resp = append(resp, toDreamResponse(&dreams[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseListInput(r *http.Request) (dream.ListInput, error) {
	q := r.URL.Query()
	input := dream.ListInput{
		SortBy:   q.Get("sort_by"),
		SortDesc: q.Get("sort_desc") == "true",
	}

	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return input, domain.NewValidationError("completed", "must be true or false")
		}
		input.Completed = &completed
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return input, domain.NewValidationError("limit", "must be an integer")
		}
		input.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return input, domain.NewValidationError("offset", "must be an integer")
		}
		input.Offset = offset
	}

	return input, nil
}

// Update handles PATCH /api/dreams/{id}.
func (h *DreamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateDreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Update(r.Context(), id, dream.UpdateInput{
		Name:     req.Name,
		Color:    req.Color,
		Size:     req.Size,
		Position: req.Position,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// Rename handles PUT /api/dreams/{id}/name.
func (h *DreamHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req renameDreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Rename(r.Context(), id, req.Name)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// Delete handles DELETE /api/dreams/{id}.
func (h *DreamHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddStep handles POST /api/dreams/{id}/steps.
func (h *DreamHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req addStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.AddStep(r.Context(), id, req.Text)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// ToggleStep handles POST /api/dreams/{id}/steps/{index}/toggle.
func (h *DreamHandler) ToggleStep(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("index", "must be an integer"))
		return
	}

	d, err := h.svc.ToggleStep(r.Context(), id, index)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}

// Fulfill handles POST /api/dreams/{id}/fulfill.
func (h *DreamHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.Fulfill(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDreamResponse(d))
}
