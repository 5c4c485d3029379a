package spec

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// SaveStageNotes overwrites the notes of one stage (last write wins) and
// persists the whole dream record. Surrounding whitespace is trimmed; the
// interior of the text is stored verbatim.
func (s *Service) SaveStageNotes(ctx context.Context, dreamID int64, stage domain.StageKey, notes string) (*domain.Dream, error) {
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLen {
		return nil, domain.NewValidationError("notes", "max 5000 characters")
	}

	d, err := s.dreams.GetByID(ctx, dreamID)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	rec, err := stageOf(d, stage)
	if err != nil {
		return nil, err
	}

	rec.Notes = notes

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "stage notes saved",
		slog.Int64("dream_id", dreamID),
		slog.String("stage", string(stage)),
	)

	return d, nil
}
