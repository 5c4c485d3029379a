package spec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// GenerateInput holds the parameters for a batch generation request.
type GenerateInput struct {
	DreamID int64
	Stage   domain.StageKey
	Count   int
	// ProfileID is the active profile, feeding the persona part of the
	// prompt and the avatar fallback. Zero means no active profile.
	ProfileID int64
}

// GenerateResult is the outcome of a batch generation. Exactly one of the
// two shapes occurs: Appended holds the full batch that was persisted, or
// Fallback describes the tutorial flow after a failed batch. A failed batch
// never persists anything, including images generated before the failure.
type GenerateResult struct {
	Dream    *domain.Dream
	Appended []domain.ImageRef
	Fallback *FallbackPlan
}

// GenerateImages generates a batch of images for one stage, sequentially,
// and appends them to the stage in one write. The requested count is
// clamped into [MinBatchCount, MaxBatchCount]. If any generation in the
// batch fails the whole batch is discarded and a fallback plan is returned
// instead of an error; the caller decides how to surface it.
func (s *Service) GenerateImages(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	d, err := s.dreams.GetByID(ctx, input.DreamID)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	rec, err := stageOf(d, input.Stage)
	if err != nil {
		return nil, err
	}

	count := clampCount(input.Count)
	profile := s.activeProfile(ctx, input.ProfileID)
	prompt := BuildPrompt(d, input.Stage, profile)
	refImages := referenceImages(rec, profile)

	generated := make([]domain.ImageRef, 0, count)
	for i := 0; i < count; i++ {
		img, err := s.generator.GenerateImage(ctx, prompt, refImages)
		if err != nil {
			s.log.WarnContext(ctx, "batch generation failed, falling back",
				slog.Int64("dream_id", input.DreamID),
				slog.String("stage", string(input.Stage)),
				slog.Int("generated_before_failure", i),
				slog.String("error", err.Error()),
			)

			plan := BuildFallback(d, input.Stage, profile)
			return &GenerateResult{Dream: d, Fallback: plan}, nil
		}
		generated = append(generated, *img)
	}

	rec.Images = append(rec.Images, generated...)

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "batch generated",
		slog.Int64("dream_id", input.DreamID),
		slog.String("stage", string(input.Stage)),
		slog.Int("count", count),
	)

	return &GenerateResult{Dream: d, Appended: generated}, nil
}

// referenceImages picks the guidance images for generation: the stage's own
// first image when present, else the active profile's avatar, else nothing.
func referenceImages(rec *domain.StageRecord, p *domain.Profile) []domain.ImageRef {
	if len(rec.Images) > 0 {
		return rec.Images[:1]
	}

	if avatar := avatarRef(p); avatar != nil {
		return []domain.ImageRef{*avatar}
	}

	return nil
}

func clampCount(count int) int {
	if count < MinBatchCount {
		return MinBatchCount
	}
	if count > MaxBatchCount {
		return MaxBatchCount
	}
	return count
}
