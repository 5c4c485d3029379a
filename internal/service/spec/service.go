// Package spec implements the four-stage S.P.E.C. reflection workflow on a
// dream: per-stage notes, the stage image lists and sequential batch image
// generation with a tutorial fallback when the generator is unavailable.
package spec

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const (
	// Batch generation is clamped into this range regardless of input.
	MinBatchCount = 1
	MaxBatchCount = 8

	MaxNotesLen = 5000
)

type dreamRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Dream, error)
	Update(ctx context.Context, d *domain.Dream) error
}

type profileRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, refImages []domain.ImageRef) (*domain.ImageRef, error)
}

// Service provides the S.P.E.C. workflow operations.
type Service struct {
	dreams    dreamRepo
	profiles  profileRepo
	generator imageGenerator
	log       *slog.Logger
}

// NewService creates a new Spec workflow service.
func NewService(
	log *slog.Logger,
	dreams dreamRepo,
	profiles profileRepo,
	generator imageGenerator,
) *Service {
	return &Service{
		dreams:    dreams,
		profiles:  profiles,
		generator: generator,
		log:       log.With("service", "spec"),
	}
}

// stageOf resolves the stage record on a dream, validating the key.
func stageOf(d *domain.Dream, key domain.StageKey) (*domain.StageRecord, error) {
	if !key.IsValid() {
		return nil, domain.NewValidationError("stage", "must be select, project, expect or collect")
	}
	return d.Spec.Stage(key), nil
}
