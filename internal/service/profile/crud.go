package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Create registers a new profile.
// Returns domain.ErrAlreadyExists when the nickname is taken.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Profile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p := &domain.Profile{}
	input.apply(p)

	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile created",
		slog.Int64("profile_id", p.ID),
		slog.String("nickname", p.Nickname),
	)

	return p, nil
}

// Update overwrites the writable fields of a profile.
// Returns domain.ErrAlreadyExists when the new nickname collides.
func (s *Service) Update(ctx context.Context, id int64, input Input) (*domain.Profile, error) {
	if id == 0 {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	input.apply(p)

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated", slog.Int64("profile_id", p.ID))

	return p, nil
}

// Get returns a profile by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetByNickname returns a profile by its unique nickname.
func (s *Service) GetByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	p, err := s.profiles.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("get profile by nickname: %w", err)
	}
	return p, nil
}

// List returns all profiles.
func (s *Service) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Delete removes a profile. Its conversations go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.profiles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile deleted", slog.Int64("profile_id", id))

	return nil
}
