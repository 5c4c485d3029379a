package domain

import (
	"strings"
	"time"
)

// Dream is one goal on the board: a visual body (color, size, position on
// the starfield canvas) plus a step checklist and the four-stage S.P.E.C.
// reflection workflow. IDs are assigned by the store on first insert;
// ID == 0 means the dream has not been persisted yet.
type Dream struct {
	ID        int64
	Name      string // may be empty (an unnamed dream)
	Color     string
	Size      int
	Position  Position
	Completed bool
	Steps     []Step
	Spec      Spec
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DreamFilter narrows and orders dream listings. The zero value lists
// everything ordered by creation time.
type DreamFilter struct {
	Completed *bool
	SortBy    string // "created_at", "updated_at" or "name"; default "created_at"
	SortDesc  bool
	Limit     uint64
	Offset    uint64
}

// Position is a 2D placement on the canvas in percentage units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Step is one checklist item. It is owned by its dream and identified only
// by its index; insertion order is preserved.
type Step struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DisplayName returns the dream name, or a placeholder for unnamed dreams.
func (d *Dream) DisplayName() string {
	if strings.TrimSpace(d.Name) == "" {
		return "unnamed dream"
	}
	return d.Name
}

// AllStepsCompleted reports whether the dream has at least one step and
// every step is completed. This is the precondition for fulfilling a dream.
func (d *Dream) AllStepsCompleted() bool {
	if len(d.Steps) == 0 {
		return false
	}
	for _, s := range d.Steps {
		if !s.Completed {
			return false
		}
	}
	return true
}
