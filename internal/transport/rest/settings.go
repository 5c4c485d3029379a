package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	"github.com/heartmarshall/dreamboard-backend/internal/service/settings"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, input settings.UpdateInput) (*domain.Settings, error)
}

// SettingsHandler serves settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type updateSettingsRequest struct {
	SlideshowDuration *int  `json:"slideshowDuration"`
	FirstVisitDone    *bool `json:"firstVisitDone"`
}

type gamificationResponse struct {
	Streak            int        `json:"streak"`
	LastGratitudeDate *time.Time `json:"lastGratitudeDate"`
	Achievements      []string   `json:"achievements"`
}

type settingsResponse struct {
	SlideshowDuration int                  `json:"slideshowDuration"`
	FirstVisitDone    bool                 `json:"firstVisitDone"`
	Gamification      gamificationResponse `json:"gamification"`
}

func toSettingsResponse(s *domain.Settings) settingsResponse {
	achievements := s.Gamification.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return settingsResponse{
		SlideshowDuration: s.SlideshowDuration,
		FirstVisitDone:    s.FirstVisitDone,
		Gamification: gamificationResponse{
			Streak:            s.Gamification.Streak,
			LastGratitudeDate: s.Gamification.LastGratitudeDate,
			Achievements:      achievements,
		},
	}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// Update handles PATCH /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.Update(r.Context(), settings.UpdateInput{
		SlideshowDuration: req.SlideshowDuration,
		FirstVisitDone:    req.FirstVisitDone,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}
