package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/internal/service/profile"
)

// profileService defines the minimal interface needed by ProfileHandler.
type profileService interface {
	Create(ctx context.Context, input profile.Input) (*domain.Profile, error)
	Get(ctx context.Context, id int64) (*domain.Profile, error)
	GetByNickname(ctx context.Context, nickname string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, id int64, input profile.Input) (*domain.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileHandler serves profile REST endpoints.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

type profileRequest struct {
	FullName    string   `json:"fullName"`
	Nickname    string   `json:"nickname"`
	BirthDate   string   `json:"birthDate"`
	BirthTime   string   `json:"birthTime"`
	Description string   `json:"description"`
	Photos      [][]byte `json:"photos"`
	Avatar      []byte   `json:"avatar"`
}

type profileResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	Nickname    string    `json:"nickname"`
	BirthDate   string    `json:"birthDate"`
	BirthTime   string    `json:"birthTime"`
	Description string    `json:"description"`
	Photos      [][]byte  `json:"photos"`
	Avatar      []byte    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	photos := p.Photos
	if photos == nil {
		photos = [][]byte{}
	}
	return profileResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		Nickname:    p.Nickname,
		BirthDate:   p.BirthDate,
		BirthTime:   p.BirthTime,
		Description: p.Description,
		Photos:      photos,
		Avatar:      p.Avatar,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r profileRequest) toInput() profile.Input {
	return profile.Input{
		FullName:    r.FullName,
		Nickname:    r.Nickname,
		BirthDate:   r.BirthDate,
		BirthTime:   r.BirthTime,
		Description: r.Description,
		Photos:      r.Photos,
		Avatar:      r.Avatar,
	}
}

// Create handles POST /api/profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProfileResponse(p))
}

// Get handles GET /api/profiles/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// GetByNickname handles GET /api/profiles/by-nickname/{nickname}.
func (h *ProfileHandler) GetByNickname(w http.ResponseWriter, r *http.Request) {
	nickname := r.PathValue("nickname")

	p, err := h.svc.GetByNickname(r.Context(), nickname)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// List handles GET /api/profiles.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]profileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, toProfileResponse(&profiles[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/profiles/{id}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
