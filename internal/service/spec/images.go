package spec

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// AddImagesResult reports the outcome of an image upload batch.
type AddImagesResult struct {
	Dream   *domain.Dream
	Added   int
	Skipped int
}

// AddImages appends a batch of uploaded images to a stage. Unreadable
// uploads (empty payload or a non-image MIME type) are skipped rather than
// failing the batch; the readable remainder is appended in input order and
// the dream is persisted once at the end. A batch where everything was
// skipped persists nothing.
func (s *Service) AddImages(ctx context.Context, dreamID int64, stage domain.StageKey, images []domain.ImageRef) (*AddImagesResult, error) {
	d, err := s.dreams.GetByID(ctx, dreamID)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	rec, err := stageOf(d, stage)
	if err != nil {
		return nil, err
	}

	result := &AddImagesResult{Dream: d}
	for _, img := range images {
		if len(img.Data) == 0 || !strings.HasPrefix(img.MIMEType, "image/") {
			result.Skipped++
			continue
		}
		rec.Images = append(rec.Images, img)
		result.Added++
	}

	if result.Added == 0 {
		return result, nil
	}

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "stage images added",
		slog.Int64("dream_id", dreamID),
		slog.String("stage", string(stage)),
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
	)

	return result, nil
}

// RemoveImage deletes the image at index from a stage's image list.
// Returns domain.ErrIndexOutOfRange for an index outside the list.
func (s *Service) RemoveImage(ctx context.Context, dreamID int64, stage domain.StageKey, index int) (*domain.Dream, error) {
	d, err := s.dreams.GetByID(ctx, dreamID)
	if err != nil {
		return nil, fmt.Errorf("get dream: %w", err)
	}

	rec, err := stageOf(d, stage)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(rec.Images) {
		return nil, fmt.Errorf("image %d of stage %s: %w", index, stage, domain.ErrIndexOutOfRange)
	}

	rec.Images = append(rec.Images[:index], rec.Images[index+1:]...)

	if err := s.dreams.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dream: %w", err)
	}

	s.log.InfoContext(ctx, "stage image removed",
		slog.Int64("dream_id", dreamID),
		slog.String("stage", string(stage)),
		slog.Int("index", index),
	)

	return d, nil
}
