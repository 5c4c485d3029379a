package backup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Import replaces the whole store with the document's contents. The import
// runs in a single transaction: either everything lands or the store keeps
// its previous contents. Conversations whose profile nickname is absent
// from the document are dropped with a warning.
func (s *Service) Import(ctx context.Context, doc *Document) error {
	if doc == nil {
		return domain.NewValidationError("document", "required")
	}
	if doc.Version != DocumentVersion {
		return domain.NewValidationError("version", fmt.Sprintf("unsupported backup version %d", doc.Version))
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.wipe(ctx); err != nil {
			return err
		}
		return s.restore(ctx, doc)
	})
	if err != nil {
		return fmt.Errorf("import backup: %w", err)
	}

	s.log.InfoContext(ctx, "store imported",
		slog.Int("dreams", len(doc.Dreams)),
		slog.Int("profiles", len(doc.Profiles)),
	)

	return nil
}

func (s *Service) wipe(ctx context.Context) error {
	if _, err := s.conversations.DeleteAll(ctx); err != nil {
		return fmt.Errorf("wipe conversations: %w", err)
	}
	if _, err := s.dreams.DeleteAll(ctx); err != nil {
		return fmt.Errorf("wipe dreams: %w", err)
	}
	if _, err := s.journal.DeleteAll(ctx); err != nil {
		return fmt.Errorf("wipe journal: %w", err)
	}
	if _, err := s.abundance.DeleteAll(ctx); err != nil {
		return fmt.Errorf("wipe abundance: %w", err)
	}
	if _, err := s.profiles.DeleteAll(ctx); err != nil {
		return fmt.Errorf("wipe profiles: %w", err)
	}
	if err := s.settings.Delete(ctx); err != nil {
		return fmt.Errorf("wipe settings: %w", err)
	}
	return nil
}

func (s *Service) restore(ctx context.Context, doc *Document) error {
	// Profiles first: conversations need the fresh IDs.
	profileIDs := make(map[string]int64, len(doc.Profiles))
	for i := range doc.Profiles {
		p := doc.Profiles[i]
		p.ID = 0
		if err := s.profiles.Create(ctx, &p); err != nil {
			return fmt.Errorf("restore profile %q: %w", p.Nickname, err)
		}
		profileIDs[p.Nickname] = p.ID
	}

	for i := range doc.Dreams {
		d := doc.Dreams[i]
		d.ID = 0
		d.Spec.Normalize()
		if err := s.dreams.Create(ctx, &d); err != nil {
			return fmt.Errorf("restore dream %q: %w", d.DisplayName(), err)
		}
	}

	for i := range doc.Journal {
		e := doc.Journal[i]
		e.ID = 0
		if err := s.journal.Create(ctx, &e); err != nil {
			return fmt.Errorf("restore journal entry: %w", err)
		}
	}

	for i := range doc.Abundance {
		tx := doc.Abundance[i]
		tx.ID = 0
		if err := s.abundance.Create(ctx, &tx); err != nil {
			return fmt.Errorf("restore abundance transaction: %w", err)
		}
	}

	for _, dump := range doc.Conversations {
		profileID, ok := profileIDs[dump.ProfileNickname]
		if !ok {
			s.log.WarnContext(ctx, "conversation dropped: unknown profile",
				slog.String("nickname", dump.ProfileNickname),
			)
			continue
		}
		c := domain.Conversation{ProfileID: profileID, Messages: dump.Messages}
		if err := s.conversations.Create(ctx, &c); err != nil {
			return fmt.Errorf("restore conversation of %q: %w", dump.ProfileNickname, err)
		}
	}

	if doc.Settings != nil {
		settings := *doc.Settings
		if err := s.settings.Upsert(ctx, &settings); err != nil {
			return fmt.Errorf("restore settings: %w", err)
		}
	}

	return nil
}
