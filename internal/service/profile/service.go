// Package profile implements dreamer profile management. Nicknames are
// unique across all profiles; the constraint is enforced by the store and
// surfaces as domain.ErrAlreadyExists.
package profile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

const (
	MaxNicknameLen    = 100
	MaxFullNameLen    = 200
	MaxDescriptionLen = 2000
	MaxPhotos         = 10
)

type profileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByNickname(ctx context.Context, nickname string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id int64) error
}

// Service provides profile management operations.
type Service struct {
	profiles profileRepo
	log      *slog.Logger
}

// NewService creates a new Profile service.
func NewService(
	log *slog.Logger,
	profiles profileRepo,
) *Service {
	return &Service{
		profiles: profiles,
		log:      log.With("service", "profile"),
	}
}

// Input holds the writable profile fields for create and update.
type Input struct {
	FullName    string
	Nickname    string
	BirthDate   string
	BirthTime   string
	Description string
	Photos      [][]byte
	Avatar      []byte
}

// Validate checks all fields and collects all errors.
func (i Input) Validate() error {
	var errs []domain.FieldError

	nickname := strings.TrimSpace(i.Nickname)
	if nickname == "" {
		errs = append(errs, domain.FieldError{Field: "nickname", Message: "required"})
	}
	if len(nickname) > MaxNicknameLen {
		errs = append(errs, domain.FieldError{Field: "nickname", Message: "max 100 characters"})
	}
	if len(i.FullName) > MaxFullNameLen {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "max 200 characters"})
	}
	if len(i.Description) > MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if len(i.Photos) > MaxPhotos {
		errs = append(errs, domain.FieldError{Field: "photos", Message: "max 10 photos"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i Input) apply(p *domain.Profile) {
	p.FullName = strings.TrimSpace(i.FullName)
	p.Nickname = strings.TrimSpace(i.Nickname)
	p.BirthDate = strings.TrimSpace(i.BirthDate)
	p.BirthTime = strings.TrimSpace(i.BirthTime)
	p.Description = strings.TrimSpace(i.Description)
	p.Photos = i.Photos
	p.Avatar = i.Avatar
}
