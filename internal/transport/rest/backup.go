package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/dreamboard-backend/internal/service/backup"
)

// backupService defines the minimal interface needed by BackupHandler.
type backupService interface {
	Export(ctx context.Context) (*backup.Document, error)
	Import(ctx context.Context, doc *backup.Document) error
}

// BackupHandler serves whole-store export and import.
type BackupHandler struct {
	svc          backupService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewBackupHandler creates a BackupHandler. Import bodies carry every
// image in the store inline, so the cap is configurable.
func NewBackupHandler(svc backupService, maxBodyBytes int64, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{svc: svc, maxBodyBytes: maxBodyBytes, log: logger.With("handler", "backup")}
}

// Export handles GET /api/backup.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="dreamboard-backup.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// Import handles POST /api/backup.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var doc backup.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Import(r.Context(), &doc); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
