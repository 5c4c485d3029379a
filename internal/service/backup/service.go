// Package backup implements whole-store export and import. An export is a
// single JSON document holding every namespace; an import replaces the
// store's contents atomically inside one transaction.
package backup

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

type dreamRepo interface {
	Create(ctx context.Context, d *domain.Dream) error
	List(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error)
	DeleteAll(ctx context.Context) (int, error)
}

type profileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	List(ctx context.Context) ([]domain.Profile, error)
	DeleteAll(ctx context.Context) (int, error)
}

type journalRepo interface {
	Create(ctx context.Context, e *domain.JournalEntry) error
	List(ctx context.Context) ([]domain.JournalEntry, error)
	DeleteAll(ctx context.Context) (int, error)
}

type conversationRepo interface {
	Create(ctx context.Context, c *domain.Conversation) error
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Conversation, error)
	DeleteAll(ctx context.Context) (int, error)
}

type abundanceRepo interface {
	Create(ctx context.Context, tx *domain.AbundanceTransaction) error
	List(ctx context.Context) ([]domain.AbundanceTransaction, error)
	DeleteAll(ctx context.Context) (int, error)
}

type settingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
	Delete(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides export and import of the whole store.
type Service struct {
	dreams        dreamRepo
	profiles      profileRepo
	journal       journalRepo
	conversations conversationRepo
	abundance     abundanceRepo
	settings      settingsRepo
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new Backup service.
func NewService(
	log *slog.Logger,
	dreams dreamRepo,
	profiles profileRepo,
	journal journalRepo,
	conversations conversationRepo,
	abundance abundanceRepo,
	settings settingsRepo,
	tx txManager,
) *Service {
	return &Service{
		dreams:        dreams,
		profiles:      profiles,
		journal:       journal,
		conversations: conversations,
		abundance:     abundance,
		settings:      settings,
		tx:            tx,
		log:           log.With("service", "backup"),
	}
}

// Document is the on-disk backup format. Conversations carry the profile
// nickname instead of the store ID so an import can relink them after the
// profiles get fresh IDs.
type Document struct {
	Version       int                           `json:"version"`
	Dreams        []domain.Dream                `json:"dreams"`
	Profiles      []domain.Profile              `json:"profiles"`
	Journal       []domain.JournalEntry         `json:"journalEntries"`
	Conversations []ConversationDump            `json:"conversations"`
	Abundance     []domain.AbundanceTransaction `json:"abundanceTransactions"`
	Settings      *domain.Settings              `json:"settings,omitempty"`
}

// ConversationDump is a conversation keyed by profile nickname.
type ConversationDump struct {
	ProfileNickname string               `json:"profileNickname"`
	Messages        []domain.ChatMessage `json:"messages"`
}

// DocumentVersion is the current backup format version.
const DocumentVersion = 1
