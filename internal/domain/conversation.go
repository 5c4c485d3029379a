package domain

import "time"

// ChatMessage is one turn in a guided-help conversation.
type ChatMessage struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Conversation is the guided-help chat history attached to a profile.
// The association is advisory only: deleting a profile does not cascade.
type Conversation struct {
	ID        int64
	ProfileID int64
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
