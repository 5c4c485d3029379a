package domain

// StageKey identifies one of the four S.P.E.C. reflection stages.
type StageKey string

const (
	StageSelect  StageKey = "select"
	StageProject StageKey = "project"
	StageExpect  StageKey = "expect"
	StageCollect StageKey = "collect"
)

// StageKeys returns the four stage keys in workflow order.
func StageKeys() []StageKey {
	return []StageKey{StageSelect, StageProject, StageExpect, StageCollect}
}

// IsValid reports whether k is one of the four known stage keys.
func (k StageKey) IsValid() bool {
	switch k {
	case StageSelect, StageProject, StageExpect, StageCollect:
		return true
	}
	return false
}

// ImageRef is an opaque binary image payload attached to a stage. It is
// owned exclusively by the stage that holds it and has no identity beyond
// its position in the stage's image list.
type ImageRef struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// StageRecord holds the per-stage reflection state: free-text notes
// (last-write-wins) and an ordered image list that grows by append and
// shrinks by removal at an index. There is no reorder operation.
type StageRecord struct {
	Notes  string     `json:"notes"`
	Images []ImageRef `json:"images"`
}

// Spec is the four-stage S.P.E.C. structure attached to every dream.
// All four stages always exist once the struct is normalized; a partially
// populated spec never survives a load.
type Spec struct {
	Select  StageRecord `json:"select"`
	Project StageRecord `json:"project"`
	Expect  StageRecord `json:"expect"`
	Collect StageRecord `json:"collect"`
}

// NewSpec returns a normalized empty spec.
func NewSpec() Spec {
	var s Spec
	s.Normalize()
	return s
}

// Stage returns a pointer to the record for the given stage key,
// or nil for an unknown key.
func (s *Spec) Stage(key StageKey) *StageRecord {
	switch key {
	case StageSelect:
		return &s.Select
	case StageProject:
		return &s.Project
	case StageExpect:
		return &s.Expect
	case StageCollect:
		return &s.Collect
	}
	return nil
}

// Normalize heals nil image slices so every stage has a non-nil, possibly
// empty image list. Records loaded from older rows (or a zero Spec) become
// fully populated; calling it repeatedly is a no-op.
func (s *Spec) Normalize() {
	for _, key := range StageKeys() {
		rec := s.Stage(key)
		if rec.Images == nil {
			rec.Images = []ImageRef{}
		}
	}
}
