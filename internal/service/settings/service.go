// Package settings implements app settings access. Reading never fails on
// an untouched store: defaults are returned until the first write.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const (
	MinSlideshowDuration = 1
	MaxSlideshowDuration = 60
)

type settingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

// Service provides settings operations.
type Service struct {
	settings settingsRepo
	log      *slog.Logger
}

// NewService creates a new Settings service.
func NewService(
	log *slog.Logger,
	settings settingsRepo,
) *Service {
	return &Service{
		settings: settings,
		log:      log.With("service", "settings"),
	}
}

// Get returns the stored settings, or defaults when nothing has been
// written yet.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return stored, nil
}

// UpdateInput holds the user-writable settings fields. The gamification
// state is owned by the journal service and cannot be set here.
type UpdateInput struct {
	SlideshowDuration *int
	FirstVisitDone    *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.SlideshowDuration != nil {
		if *i.SlideshowDuration < MinSlideshowDuration || *i.SlideshowDuration > MaxSlideshowDuration {
			errs = append(errs, domain.FieldError{Field: "slideshow_duration", Message: "must be in 1..60 seconds"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Update applies a partial settings update and persists the whole record.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Settings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.SlideshowDuration != nil {
		current.SlideshowDuration = *input.SlideshowDuration
	}
	if input.FirstVisitDone != nil {
		current.FirstVisitDone = *input.FirstVisitDone
	}

	if err := s.settings.Upsert(ctx, current); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.Int("slideshow_duration", current.SlideshowDuration),
		slog.Bool("first_visit_done", current.FirstVisitDone),
	)

	return current, nil
}
