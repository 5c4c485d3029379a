package spec

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// FallbackPlan is the tutorial flow shown when generation is unavailable.
// Image preference order: the stage's first image, then the active
// profile's avatar, then no image at all. The prompt is always present so
// the user can retry elsewhere.
type FallbackPlan struct {
	Stage  domain.StageKey
	Image  *domain.ImageRef
	Prompt string
}

// BuildFallback assembles the tutorial fallback for a dream stage. It is
// pure: the profile is whatever the caller already resolved, and a nil one
// just degrades to the next image preference.
func BuildFallback(d *domain.Dream, stage domain.StageKey, p *domain.Profile) *FallbackPlan {
	plan := &FallbackPlan{
		Stage:  stage,
		Prompt: BuildPrompt(d, stage, p),
	}

	if rec := d.Spec.Stage(stage); rec != nil && len(rec.Images) > 0 {
		img := rec.Images[0]
		plan.Image = &img
		return plan
	}

	plan.Image = avatarRef(p)

	return plan
}

// activeProfile loads the active profile, or nil when there is none or the
// lookup fails. Generation degrades instead of failing on profile trouble.
func (s *Service) activeProfile(ctx context.Context, profileID int64) *domain.Profile {
	if profileID == 0 {
		return nil
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		s.log.DebugContext(ctx, "active profile lookup failed",
			slog.Int64("profile_id", profileID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	return p
}

// avatarRef wraps the profile's avatar as a reference image, or nil when
// there is no profile or no avatar.
func avatarRef(p *domain.Profile) *domain.ImageRef {
	if p == nil || !p.HasAvatar() {
		return nil
	}

	return &domain.ImageRef{
		MIMEType: detectImageMIME(p.Avatar),
		Data:     p.Avatar,
	}
}

// detectImageMIME sniffs the avatar payload. Avatars are stored as raw
// bytes without a recorded content type.
func detectImageMIME(data []byte) string {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "image/png"
	case len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff:
		return "image/jpeg"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
