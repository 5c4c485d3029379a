package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Export collects every namespace into one backup document.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	doc := &Document{Version: DocumentVersion}

	var err error
	if doc.Dreams, err = s.dreams.List(ctx, domain.DreamFilter{}); err != nil {
		return nil, fmt.Errorf("export dreams: %w", err)
	}
	if doc.Profiles, err = s.profiles.List(ctx); err != nil {
		return nil, fmt.Errorf("export profiles: %w", err)
	}
	if doc.Journal, err = s.journal.List(ctx); err != nil {
		return nil, fmt.Errorf("export journal: %w", err)
	}
	if doc.Abundance, err = s.abundance.List(ctx); err != nil {
		return nil, fmt.Errorf("export abundance: %w", err)
	}

	doc.Conversations = []ConversationDump{}
	for _, p := range doc.Profiles {
		conversations, err := s.conversations.ListByProfile(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("export conversations of %q: %w", p.Nickname, err)
		}
		for _, c := range conversations {
			doc.Conversations = append(doc.Conversations, ConversationDump{
				ProfileNickname: p.Nickname,
				Messages:        c.Messages,
			})
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	doc.Settings = settings

	s.log.InfoContext(ctx, "store exported",
		slog.Int("dreams", len(doc.Dreams)),
		slog.Int("profiles", len(doc.Profiles)),
		slog.Int("journal_entries", len(doc.Journal)),
		slog.Int("conversations", len(doc.Conversations)),
		slog.Int("abundance_transactions", len(doc.Abundance)),
	)

	return doc, nil
}
