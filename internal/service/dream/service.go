// Package dream implements dream lifecycle operations: creation on the
// board, whole-record updates, the step checklist and fulfillment.
package dream

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const (
	MinSize     = 20
	MaxSize     = 200
	DefaultSize = 100

	MaxNameLen = 200
	MaxStepLen = 500
)

type dreamRepo interface {
	Create(ctx context.Context, d *domain.Dream) error
	GetByID(ctx context.Context, id int64) (*domain.Dream, error)
	List(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error)
	Update(ctx context.Context, d *domain.Dream) error
	Delete(ctx context.Context, id int64) error
}

// Service provides dream management operations.
type Service struct {
	dreams dreamRepo
	log    *slog.Logger

	// randFloat is swappable in tests; defaults to rand.Float64.
	randFloat func() float64
}

// NewService creates a new Dream service.
func NewService(
	log *slog.Logger,
	dreams dreamRepo,
) *Service {
	return &Service{
		dreams:    dreams,
		log:       log.With("service", "dream"),
		randFloat: rand.Float64,
	}
}

// newPosition scatters a fresh dream over the usable area of the board,
// keeping a margin so the body never clips the canvas edge.
func (s *Service) newPosition() domain.Position {
	return domain.Position{
		X: 10 + s.randFloat()*80, // 10..90
		Y: 15 + s.randFloat()*70, // 15..85
	}
}

// clampSize forces the size into the visual range; zero means "use default".
func clampSize(size int) int {
	if size == 0 {
		return DefaultSize
	}
	if size < MinSize {
		return MinSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}
