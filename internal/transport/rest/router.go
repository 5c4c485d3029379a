package rest

import (
	"net/http"

	"github.com/heartmarshall/dreamboard-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Dream     *DreamHandler
	Spec      *SpecHandler
	Profile   *ProfileHandler
	Journal   *JournalHandler
	Abundance *AbundanceHandler
	Settings  *SettingsHandler
	Assistant *AssistantHandler
	Backup    *BackupHandler
	Generate  *GenerateHandler
}

// NewRouter mounts all REST routes. The generation routes get their own
// rate limit on top of the shared middleware stack applied by the caller;
// everything else is mounted as-is.
func NewRouter(h Handlers, generationLimit middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/dreams", h.Dream.Create)
	mux.HandleFunc("GET /api/dreams", h.Dream.List)
	mux.HandleFunc("GET /api/dreams/{id}", h.Dream.Get)
	mux.HandleFunc("PATCH /api/dreams/{id}", h.Dream.Update)
	mux.HandleFunc("PUT /api/dreams/{id}/name", h.Dream.Rename)
	mux.HandleFunc("DELETE /api/dreams/{id}", h.Dream.Delete)
	mux.HandleFunc("POST /api/dreams/{id}/steps", h.Dream.AddStep)
	mux.HandleFunc("POST /api/dreams/{id}/steps/{index}/toggle", h.Dream.ToggleStep)
	mux.HandleFunc("POST /api/dreams/{id}/fulfill", h.Dream.Fulfill)

	mux.HandleFunc("PUT /api/dreams/{id}/spec/{stage}/notes", h.Spec.SaveNotes)
	mux.HandleFunc("POST /api/dreams/{id}/spec/{stage}/images", h.Spec.AddImages)
	mux.HandleFunc("DELETE /api/dreams/{id}/spec/{stage}/images/{index}", h.Spec.RemoveImage)
	mux.Handle("POST /api/dreams/{id}/spec/{stage}/generate", generationLimit(http.HandlerFunc(h.Spec.Generate)))

	mux.HandleFunc("POST /api/profiles", h.Profile.Create)
	mux.HandleFunc("GET /api/profiles", h.Profile.List)
	mux.HandleFunc("GET /api/profiles/{id}", h.Profile.Get)
	mux.HandleFunc("GET /api/profiles/by-nickname/{nickname}", h.Profile.GetByNickname)
	mux.HandleFunc("PUT /api/profiles/{id}", h.Profile.Update)
	mux.HandleFunc("DELETE /api/profiles/{id}", h.Profile.Delete)

	mux.HandleFunc("POST /api/journal", h.Journal.Create)
	mux.HandleFunc("GET /api/journal", h.Journal.List)
	mux.HandleFunc("DELETE /api/journal/{id}", h.Journal.Delete)

	mux.HandleFunc("POST /api/abundance", h.Abundance.Create)
	mux.HandleFunc("GET /api/abundance", h.Abundance.List)
	mux.HandleFunc("GET /api/abundance/totals", h.Abundance.Totals)
	mux.HandleFunc("DELETE /api/abundance/{id}", h.Abundance.Delete)

	mux.HandleFunc("GET /api/settings", h.Settings.Get)
	mux.HandleFunc("PATCH /api/settings", h.Settings.Update)

	mux.HandleFunc("POST /api/conversations", h.Assistant.Start)
	mux.HandleFunc("GET /api/conversations", h.Assistant.List)
	mux.HandleFunc("GET /api/conversations/{id}", h.Assistant.Get)
	mux.HandleFunc("POST /api/conversations/{id}/messages", h.Assistant.SendMessage)
	mux.HandleFunc("DELETE /api/conversations/{id}", h.Assistant.Delete)

	mux.HandleFunc("GET /api/backup", h.Backup.Export)
	mux.HandleFunc("POST /api/backup", h.Backup.Import)

	mux.Handle("POST /api/generate-text", generationLimit(http.HandlerFunc(h.Generate.Text)))
	mux.Handle("POST /api/generate-image", generationLimit(http.HandlerFunc(h.Generate.Image)))

	return mux
}
