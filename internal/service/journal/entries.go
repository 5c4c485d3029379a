package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// CreateInput holds the parameters for writing a journal entry.
type CreateInput struct {
	Text      string
	Mood      string
	Gratitude bool
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(text) > MaxTextLen {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 10000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create writes a journal entry. Gratitude entries additionally advance the
// gratitude streak; a streak bookkeeping failure does not fail the entry.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.JournalEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e := &domain.JournalEntry{
		Text:      strings.TrimSpace(input.Text),
		Mood:      strings.TrimSpace(input.Mood),
		Gratitude: input.Gratitude,
	}

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "journal entry created",
		slog.Int64("entry_id", e.ID),
		slog.Bool("gratitude", e.Gratitude),
	)

	if e.Gratitude {
		if err := s.advanceStreak(ctx); err != nil {
			s.log.ErrorContext(ctx, "streak update failed", slog.String("error", err.Error()))
		}
	}

	return e, nil
}

// List returns all journal entries, newest first.
func (s *Service) List(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// Delete removes a journal entry. Removing an entry never rewinds the
// streak.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}

// advanceStreak updates the gratitude streak in the gamification state.
// Same-day repeats keep the streak; a next-day entry extends it; any gap
// resets it to one.
func (s *Service) advanceStreak(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get settings: %w", err)
		}
		settings = domain.DefaultSettings()
	}

	now := s.now()
	g := &settings.Gamification

	switch {
	case g.LastGratitudeDate == nil:
		g.Streak = 1
	case sameDay(*g.LastGratitudeDate, now):
		// already counted today
	case isNextDay(*g.LastGratitudeDate, now):
		g.Streak++
	default:
		g.Streak = 1
	}

	g.LastGratitudeDate = &now

	for _, a := range streakAchievements {
		if g.Streak >= a.Days && !g.HasAchievement(a.Name) {
			g.Achievements = append(g.Achievements, a.Name)
			s.log.InfoContext(ctx, "achievement unlocked", slog.String("achievement", a.Name))
		}
	}

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
