package dream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Get returns a single dream by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Dream, error) {
	d, err := s.dreams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}
	return d, nil
}

// List returns dreams matching the filter.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Dream, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dreams, err := s.dreams.List(ctx, domain.DreamFilter{
		Completed: input.Completed,
		SortBy:    input.SortBy,
		SortDesc:  input.SortDesc,
		Limit:     uint64(input.Limit),
		Offset:    uint64(input.Offset),
	})
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}

	return dreams, nil
}

// Delete removes a dream from the board.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.dreams.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dream: %w", err)
	}

	s.log.InfoContext(ctx, "dream deleted", slog.Int64("dream_id", id))

	return nil
}
