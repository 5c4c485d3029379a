// Package seed populates an untouched store with starter content and heals
// older dream records on startup.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

type dreamRepo interface {
	Create(ctx context.Context, d *domain.Dream) error
	List(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error)
	Update(ctx context.Context, d *domain.Dream) error
}

type profileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	Count(ctx context.Context) (int, error)
}

// Service seeds and heals the store.
type Service struct {
	dreams   dreamRepo
	profiles profileRepo
	log      *slog.Logger
}

// NewService creates a new Seed service.
func NewService(
	log *slog.Logger,
	dreams dreamRepo,
	profiles profileRepo,
) *Service {
	return &Service{
		dreams:   dreams,
		profiles: profiles,
		log:      log.With("service", "seed"),
	}
}

// defaultProfiles are the two starter dreamers of a fresh board.
func defaultProfiles() []domain.Profile {
	return []domain.Profile{
		{Nickname: "dreamer-one", FullName: ""},
		{Nickname: "dreamer-two", FullName: ""},
	}
}

// defaultDreams are the two unnamed starter dreams. Both get a fully
// normalized workflow record and distinct fixed positions so the fresh
// board does not look empty.
func defaultDreams() []domain.Dream {
	return []domain.Dream{
		{
			Color:    "#8b5cf6",
			Size:     110,
			Position: domain.Position{X: 30, Y: 40},
			Steps:    []domain.Step{},
			Spec:     domain.NewSpec(),
		},
		{
			Color:    "#f59e0b",
			Size:     90,
			Position: domain.Position{X: 65, Y: 60},
			Steps:    []domain.Step{},
			Spec:     domain.NewSpec(),
		},
	}
}

// EnsureDefaults seeds the starter profiles and dreams, but only when the
// store has never held a profile. A store with any profile is left alone.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	count, err := s.profiles.Count(ctx)
	if err != nil {
		return fmt.Errorf("count profiles: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range defaultProfiles() {
		if err := s.profiles.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed profile %q: %w", p.Nickname, err)
		}
	}

	for _, d := range defaultDreams() {
		if err := s.dreams.Create(ctx, &d); err != nil {
			return fmt.Errorf("seed dream: %w", err)
		}
	}

	s.log.InfoContext(ctx, "default content seeded",
		slog.Int("profiles", len(defaultProfiles())),
		slog.Int("dreams", len(defaultDreams())),
	)

	return nil
}

// NormalizeSpecs rewrites every stored dream once so records written by
// older versions carry the full four-stage workflow structure. Reads heal
// lazily already; this pass makes the healing durable. It is idempotent
// and runs on startup.
func (s *Service) NormalizeSpecs(ctx context.Context) error {
	dreams, err := s.dreams.List(ctx, domain.DreamFilter{})
	if err != nil {
		return fmt.Errorf("list dreams: %w", err)
	}

	for i := range dreams {
		d := dreams[i]
		d.Spec.Normalize()
		if err := s.dreams.Update(ctx, &d); err != nil {
			return fmt.Errorf("normalize dream %d: %w", d.ID, err)
		}
	}

	if len(dreams) > 0 {
		s.log.InfoContext(ctx, "dream specs normalized", slog.Int("dreams", len(dreams)))
	}

	return nil
}
