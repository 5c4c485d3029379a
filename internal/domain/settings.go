package domain

import "time"

// SettingsID is the fixed id of the singleton settings row.
const SettingsID int64 = 1

// Gamification is the nested gratitude-streak state inside Settings.
type Gamification struct {
	Streak            int        `json:"streak"`
	LastGratitudeDate *time.Time `json:"lastGratitudeDate"`
	Achievements      []string   `json:"achievements"`
}

// HasAchievement reports whether the given achievement is already unlocked.
func (g *Gamification) HasAchievement(name string) bool {
	for _, a := range g.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// Settings is the app-wide singleton preferences record, created with
// defaults on first access.
type Settings struct {
	ID                int64
	SlideshowDuration int // seconds per slide in the dream image portal
	FirstVisitDone    bool
	Gamification      Gamification
	UpdatedAt         time.Time
}

// DefaultSettings returns the settings record seeded on first run.
func DefaultSettings() *Settings {
	return &Settings{
		ID:                SettingsID,
		SlideshowDuration: 5,
		Gamification: Gamification{
			Achievements: []string{},
		},
	}
}
