package dream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Fulfill marks a dream as completed. A dream can only be fulfilled when it
// has at least one step and every step is checked off. Fulfilling an already
// fulfilled dream is a no-op.
func (s *Service) Fulfill(ctx context.Context, id int64) (*domain.Dream, error) {
	d, err := s.dreams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	if d.Completed {
		return d, nil
	}

	if !d.AllStepsCompleted() {
		return nil, domain.NewValidationError("steps", "all steps must be completed before fulfilling")
	}

	d.Completed = true

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "dream fulfilled",
		slog.Int64("dream_id", d.ID),
		slog.String("name", d.DisplayName()),
	)

	return d, nil
}
