package assistant

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockConversationRepo struct {
	CreateFunc         func(ctx context.Context, c *domain.Conversation) error
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.Conversation, error)
	ListByProfileFunc  func(ctx context.Context, profileID int64) ([]domain.Conversation, error)
	UpdateMessagesFunc func(ctx context.Context, c *domain.Conversation) error
	DeleteFunc         func(ctx context.Context, id int64) error

	updateCalls int
}

func (m *mockConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	return m.CreateFunc(ctx, c)
}

func (m *mockConversationRepo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockConversationRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Conversation, error) {
	return m.ListByProfileFunc(ctx, profileID)
}

func (m *mockConversationRepo) UpdateMessages(ctx context.Context, c *domain.Conversation) error {
	m.updateCalls++
	if m.UpdateMessagesFunc != nil {
		return m.UpdateMessagesFunc(ctx, c)
	}
	return nil
}

func (m *mockConversationRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockTextGenerator struct {
	GenerateTextFunc func(ctx context.Context, prompt string, expectJSON bool) (string, error)
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, prompt string, expectJSON bool) (string, error) {
	return m.GenerateTextFunc(ctx, prompt, expectJSON)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newTestService(repo *mockConversationRepo, gen *mockTextGenerator) *Service {
	if gen == nil {
		gen = &mockTextGenerator{}
	}
	svc := NewService(slog.Default(), repo, gen)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestStart_RequiresProfile(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockConversationRepo{}, nil)

	_, err := svc.Start(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendMessage_AppendsBothSides(t *testing.T) {
	t.Parallel()

	c := &domain.Conversation{ID: 1, ProfileID: 2, Messages: []domain.ChatMessage{}}
	repo := &mockConversationRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Conversation, error) { return c, nil },
	}
	var gotPrompt string
	gen := &mockTextGenerator{
		GenerateTextFunc: func(ctx context.Context, prompt string, expectJSON bool) (string, error) {
			gotPrompt = prompt
			assert.False(t, expectJSON)
			return "that sounds wonderful", nil
		},
	}
	svc := newTestService(repo, gen)

	got, err := svc.SendMessage(context.Background(), 1, "  I want to sail  ", "")
	require.NoError(t, err)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "I want to sail", got.Messages[0].Text)
	assert.Equal(t, "model", got.Messages[1].Role)
	assert.Equal(t, "that sounds wonderful", got.Messages[1].Text)
	assert.Contains(t, gotPrompt, "user: I want to sail")
	assert.Equal(t, 1, repo.updateCalls)
}

func TestSendMessage_GenerationFailurePersistsNothing(t *testing.T) {
	t.Parallel()

	c := &domain.Conversation{ID: 1, ProfileID: 2, Messages: []domain.ChatMessage{}}
	repo := &mockConversationRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Conversation, error) { return c, nil },
	}
	gen := &mockTextGenerator{
		GenerateTextFunc: func(ctx context.Context, prompt string, expectJSON bool) (string, error) {
			return "", domain.NewGenerationError("generate text", errors.New("overloaded"))
		},
	}
	svc := newTestService(repo, gen)

	_, err := svc.SendMessage(context.Background(), 1, "hello", "")
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Zero(t, repo.updateCalls)
	assert.Empty(t, c.Messages, "failed reply must not grow the history")
}

func TestSendMessage_EmptyTextRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockConversationRepo{}, nil)

	_, err := svc.SendMessage(context.Background(), 1, "   ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendMessage_ViewContextFeedsPromptNotHistory(t *testing.T) {
	t.Parallel()

	c := &domain.Conversation{ID: 1, ProfileID: 2, Messages: []domain.ChatMessage{}}
	repo := &mockConversationRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Conversation, error) { return c, nil },
	}
	var gotPrompt string
	gen := &mockTextGenerator{
		GenerateTextFunc: func(ctx context.Context, prompt string, expectJSON bool) (string, error) {
			gotPrompt = prompt
			return "tap the plus button", nil
		},
	}
	svc := newTestService(repo, gen)

	viewContext := `{"view":"board","openDream":"sail the atlantic"}`
	got, err := svc.SendMessage(context.Background(), 1, "how do I add a step?", viewContext)
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, `"openDream":"sail the atlantic"`)
	require.Len(t, got.Messages, 2)
	for _, m := range got.Messages {
		assert.NotContains(t, m.Text, "openDream", "the context snapshot is not part of the history")
	}
}

func TestBuildChatPrompt_WindowsHistory(t *testing.T) {
	t.Parallel()

	messages := make([]domain.ChatMessage, 0, historyWindow+5)
	for i := 0; i < historyWindow+5; i++ {
		messages = append(messages, domain.ChatMessage{Role: "user", Text: "m"})
	}
	messages[0].Text = "the very first message"

	prompt := buildChatPrompt(messages, "")
	assert.NotContains(t, prompt, "the very first message")
}
