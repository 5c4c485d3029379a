package dream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// AddStep appends a checklist step to the dream. Whitespace-only text is a
// no-op: the stored dream is returned unchanged and nothing is written.
func (s *Service) AddStep(ctx context.Context, id int64, text string) (*domain.Dream, error) {
	d, err := s.dreams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return d, nil
	}
	if len(text) > MaxStepLen {
		return nil, domain.NewValidationError("text", "max 500 characters")
	}

	d.Steps = append(d.Steps, domain.Step{Text: text})

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "step added",
		slog.Int64("dream_id", d.ID),
		slog.Int("steps", len(d.Steps)),
	)

	return d, nil
}

// ToggleStep flips the completion flag of the step at index.
// Returns domain.ErrIndexOutOfRange for an index outside the checklist.
func (s *Service) ToggleStep(ctx context.Context, id int64, index int) (*domain.Dream, error) {
	d, err := s.dreams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	if index < 0 || index >= len(d.Steps) {
		return nil, fmt.Errorf("step %d of dream %d: %w", index, id, domain.ErrIndexOutOfRange)
	}

	d.Steps[index].Completed = !d.Steps[index].Completed

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	return d, nil
}
