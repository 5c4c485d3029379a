// Package journal implements the daily journal plus the gratitude streak
// tracker feeding the gamification state in settings.
package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const MaxTextLen = 10000

// Streak achievements, awarded once each when the streak first reaches the
// threshold.
var streakAchievements = []struct {
	Days int
	Name string
}{
	{3, "constancia-3"},
	{7, "constancia-7"},
	{30, "constancia-30"},
}

type journalRepo interface {
	Create(ctx context.Context, e *domain.JournalEntry) error
	List(ctx context.Context) ([]domain.JournalEntry, error)
	Delete(ctx context.Context, id int64) error
}

type settingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

// Service provides journal operations.
type Service struct {
	entries  journalRepo
	settings settingsRepo
	log      *slog.Logger

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a new Journal service.
func NewService(
	log *slog.Logger,
	entries journalRepo,
	settings settingsRepo,
) *Service {
	return &Service{
		entries:  entries,
		settings: settings,
		log:      log.With("service", "journal"),
		now:      time.Now,
	}
}

// sameDay reports whether a and b fall on the same calendar day of a's
// location.
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isNextDay reports whether b is on the calendar day right after a.
func isNextDay(a, b time.Time) bool {
	return sameDay(a.AddDate(0, 0, 1), b)
}
