// Package assistant implements the per-profile chat assistant on top of the
// text generation client. Conversations persist their full message history.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const (
	MaxMessageLen = 4000
	MaxContextLen = 8000
	// historyWindow bounds how many trailing messages feed the prompt.
	historyWindow = 20
)

type conversationRepo interface {
	Create(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id int64) (*domain.Conversation, error)
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Conversation, error)
	UpdateMessages(ctx context.Context, c *domain.Conversation) error
	Delete(ctx context.Context, id int64) error
}

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string, expectJSON bool) (string, error)
}

// Service provides assistant chat operations.
type Service struct {
	conversations conversationRepo
	generator     textGenerator
	log           *slog.Logger

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a new Assistant service.
func NewService(
	log *slog.Logger,
	conversations conversationRepo,
	generator textGenerator,
) *Service {
	return &Service{
		conversations: conversations,
		generator:     generator,
		log:           log.With("service", "assistant"),
		now:           time.Now,
	}
}

// Start opens a new empty conversation for a profile.
func (s *Service) Start(ctx context.Context, profileID int64) (*domain.Conversation, error) {
	if profileID == 0 {
		return nil, domain.NewValidationError("profile_id", "required")
	}

	c := &domain.Conversation{
		ProfileID: profileID,
		Messages:  []domain.ChatMessage{},
	}

	if err := s.conversations.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	s.log.InfoContext(ctx, "conversation started",
		slog.Int64("conversation_id", c.ID),
		slog.Int64("profile_id", profileID),
	)

	return c, nil
}

// List returns all conversations of a profile, most recent first.
func (s *Service) List(ctx context.Context, profileID int64) ([]domain.Conversation, error) {
	if profileID == 0 {
		return nil, domain.NewValidationError("profile_id", "required")
	}

	conversations, err := s.conversations.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, nil
}

// Get returns one conversation with its full history.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Conversation, error) {
	c, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return c, nil
}

// SendMessage appends the user message, asks the model for a reply and
// persists both in one write. A generation failure persists nothing, so a
// retry sees the conversation as it was. viewContext is an optional
// client-supplied JSON snapshot of what the user is looking at (current
// view, open dream); it feeds the prompt but is never stored.
func (s *Service) SendMessage(ctx context.Context, conversationID int64, text, viewContext string) (*domain.Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "required")
	}
	if len(text) > MaxMessageLen {
		return nil, domain.NewValidationError("text", "max 4000 characters")
	}
	if len(viewContext) > MaxContextLen {
		return nil, domain.NewValidationError("context", "max 8000 characters")
	}

	c, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	userMsg := domain.ChatMessage{Role: "user", Text: text, At: s.now()}

	prompt := buildChatPrompt(append(c.Messages, userMsg), viewContext)
	reply, err := s.generator.GenerateText(ctx, prompt, false)
	if err != nil {
		return nil, fmt.Errorf("assistant reply: %w", err)
	}

	c.Messages = append(c.Messages,
		userMsg,
		domain.ChatMessage{Role: "model", Text: reply, At: s.now()},
	)

	if err := s.conversations.UpdateMessages(ctx, c); err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}

	s.log.InfoContext(ctx, "assistant replied",
		slog.Int64("conversation_id", c.ID),
		slog.Int("messages", len(c.Messages)),
	)

	return c, nil
}

// Delete removes a conversation and its history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.conversations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

// buildChatPrompt flattens the trailing history into a single prompt. The
// model sees the optional view context followed by role-tagged lines, and
// is asked to continue as the assistant.
func buildChatPrompt(messages []domain.ChatMessage, viewContext string) string {
	start := 0
	if len(messages) > historyWindow {
		start = len(messages) - historyWindow
	}

	var b strings.Builder
	b.WriteString("You are a warm, encouraging assistant inside a dream board app. ")
	b.WriteString("Answer the last user message, staying concise.\n\n")
	if viewContext != "" {
		b.WriteString("What the user is currently looking at: ")
		b.WriteString(viewContext)
		b.WriteString("\n\n")
	}
	for _, m := range messages[start:] {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	b.WriteString("model:")

	return b.String()
}
