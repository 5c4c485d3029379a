package domain

import "time"

// JournalEntry is one dated journal note. Gratitude entries feed the
// gratitude-streak gamification in Settings.
type JournalEntry struct {
	ID        int64
	Text      string
	Mood      string // free tag, may be empty
	Gratitude bool
	CreatedAt time.Time
}
