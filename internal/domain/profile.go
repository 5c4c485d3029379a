package domain

import "time"

// Profile is a user-defined persona. The Description feeds generated-image
// prompts; the avatar doubles as the fallback reference image when a stage
// has no photos of its own. Nickname is unique across profiles.
type Profile struct {
	ID          int64
	FullName    string
	Nickname    string
	BirthDate   string // YYYY-MM-DD, free-form, never parsed
	BirthTime   string // HH:MM
	Description string
	Photos      [][]byte
	Avatar      []byte // optional, nil when unset
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasAvatar reports whether the profile has an avatar payload.
func (p *Profile) HasAvatar() bool {
	return len(p.Avatar) > 0
}
