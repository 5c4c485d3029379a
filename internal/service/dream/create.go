package dream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Create places a new dream on the board. The position is chosen at random
// within the usable canvas area and the workflow record starts out empty
// but fully normalized.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Dream, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	d := &domain.Dream{
		Name:     strings.TrimSpace(input.Name),
		Color:    strings.TrimSpace(input.Color),
		Size:     clampSize(input.Size),
		Position: s.newPosition(),
		Steps:    []domain.Step{},
		Spec:     domain.NewSpec(),
	}

	if err := s.dreams.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create dream: %w", err)
	}

	s.log.InfoContext(ctx, "dream created",
		slog.Int64("dream_id", d.ID),
		slog.String("name", d.DisplayName()),
	)

	return d, nil
}
