package dream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Update applies a partial update to a dream and writes the whole record
// back. The last write wins; there is no version check.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Dream, error) {
	if id == 0 {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	d, err := s.dreams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	if input.Name != nil {
		d.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		d.Color = strings.TrimSpace(*input.Color)
	}
	if input.Size != nil {
		d.Size = clampSize(*input.Size)
	}
	if input.Position != nil {
		d.Position = *input.Position
	}

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "dream updated", slog.Int64("dream_id", d.ID))

	return d, nil
}

// Rename changes only the dream's name. Unlike Update, an empty name is
// allowed here: the board supports unnamed dreams.
func (s *Service) Rename(ctx context.Context, id int64, name string) (*domain.Dream, error) {
	name = strings.TrimSpace(name)
	if len(name) > MaxNameLen {
		return nil, domain.NewValidationError("name", "max 200 characters")
	}

	d, err := s.dreams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	d.Name = name
	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	return d, nil
}
