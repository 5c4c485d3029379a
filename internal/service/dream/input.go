package dream

import (
	"strings"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// CreateInput holds the parameters for creating a dream.
type CreateInput struct {
	Name  string
	Color string
	Size  int
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > MaxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the parameters for a partial dream update. Nil fields
// keep their stored values; set fields overwrite them (last write wins).
type UpdateInput struct {
	Name     *string
	Color    *string
	Size     *int
	Position *domain.Position
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		if name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must not be blank"})
		}
		if len(name) > MaxNameLen {
			errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing dreams.
type ListInput struct {
	Completed *bool
	SortBy    string
	SortDesc  bool
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	switch i.SortBy {
	case "", "created_at", "updated_at", "name":
	default:
		errs = append(errs, domain.FieldError{Field: "sort_by", Message: "must be created_at, updated_at or name"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
