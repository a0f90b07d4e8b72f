// Package session holds the mutable editing state for one document drafting
// session: the active template, scalar answers, and repeatable-section items.
package session

import (
	"strings"

	"github.com/mzhao/legal-drafter/internal/types"
)

// Session owns the form state for one active template. It is not safe for
// concurrent use; callers serialize access (the HTTP layer holds a lock per
// session, the CLI is single-threaded).
type Session struct {
	template *types.DocumentTemplate
	answers  map[string]string
	items    map[string][]string
}

// New returns a session with no active template.
func New() *Session {
	return &Session{
		answers: make(map[string]string),
		items:   make(map[string][]string),
	}
}

// Template returns the active template, or nil if none is selected.
func (s *Session) Template() *types.DocumentTemplate {
	return s.template
}

// SelectTemplate replaces the active template and unconditionally clears all
// answers and repeatable-section data. Different templates may reuse field ids
// with different semantics, so no data survives a template switch.
func (s *Session) SelectTemplate(tmpl *types.DocumentTemplate) {
	s.template = tmpl
	s.answers = make(map[string]string)
	s.items = make(map[string][]string)
}

// SetFieldValue overwrites the scalar answer for a field. Validation is not
// performed at write time; completeness is computed lazily by IsComplete.
func (s *Session) SetFieldValue(fieldID, value string) error {
	field, err := s.lookupField(fieldID)
	if err != nil {
		return err
	}
	if field.Kind == types.KindRepeatable {
		return &WrongKindError{FieldID: fieldID, Kind: field.Kind}
	}
	s.answers[fieldID] = value
	return nil
}

// FieldValue returns the current scalar answer for a field ("" if unset).
func (s *Session) FieldValue(fieldID string) string {
	return s.answers[fieldID]
}

// AddRepeatableItem appends one empty item to the field's sequence.
func (s *Session) AddRepeatableItem(fieldID string) error {
	if err := s.lookupRepeatable(fieldID); err != nil {
		return err
	}
	s.items[fieldID] = append(s.items[fieldID], "")
	return nil
}

// UpdateRepeatableItem replaces the item at index. An out-of-bounds index is a
// no-op rather than an error; rapid edit/remove interleavings can reference an
// index that no longer exists.
func (s *Session) UpdateRepeatableItem(fieldID string, index int, value string) error {
	if err := s.lookupRepeatable(fieldID); err != nil {
		return err
	}
	seq := s.items[fieldID]
	if index < 0 || index >= len(seq) {
		return nil
	}
	seq[index] = value
	return nil
}

// RemoveRepeatableItem removes the item at index, shifting subsequent items
// down by one. Out-of-bounds indexes are a no-op.
func (s *Session) RemoveRepeatableItem(fieldID string, index int) error {
	if err := s.lookupRepeatable(fieldID); err != nil {
		return err
	}
	seq := s.items[fieldID]
	if index < 0 || index >= len(seq) {
		return nil
	}
	s.items[fieldID] = append(seq[:index], seq[index+1:]...)
	return nil
}

// RepeatableItems returns a copy of the field's item sequence in insertion order.
func (s *Session) RepeatableItems(fieldID string) []string {
	seq := s.items[fieldID]
	out := make([]string, len(seq))
	copy(out, seq)
	return out
}

// IsComplete reports whether every required field has a non-empty answer:
// non-blank after trimming for scalar kinds, at least one non-blank item for
// repeatable kinds. Recomputed from current state on every call.
func (s *Session) IsComplete() bool {
	if s.template == nil {
		return false
	}
	for _, field := range s.template.Fields {
		if !field.Required {
			continue
		}
		if field.Kind == types.KindRepeatable {
			if !anyNonBlank(s.items[field.ID]) {
				return false
			}
			continue
		}
		if strings.TrimSpace(s.answers[field.ID]) == "" {
			return false
		}
	}
	return true
}

// Snapshot returns an immutable copy of the current form state for assembly.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Answers: make(map[string]string, len(s.answers)),
		Items:   make(map[string][]string, len(s.items)),
	}
	for k, v := range s.answers {
		snap.Answers[k] = v
	}
	for k, seq := range s.items {
		cp := make([]string, len(seq))
		copy(cp, seq)
		snap.Items[k] = cp
	}
	return snap
}

// Snapshot is a point-in-time copy of a session's form data.
type Snapshot struct {
	Answers map[string]string
	Items   map[string][]string
}

func (s *Session) lookupField(fieldID string) (*types.FormField, error) {
	if s.template == nil {
		return nil, ErrNoTemplate
	}
	field := s.template.Field(fieldID)
	if field == nil {
		return nil, &UnknownFieldError{FieldID: fieldID}
	}
	return field, nil
}

func (s *Session) lookupRepeatable(fieldID string) error {
	field, err := s.lookupField(fieldID)
	if err != nil {
		return err
	}
	if field.Kind != types.KindRepeatable {
		return &WrongKindError{FieldID: fieldID, Kind: field.Kind}
	}
	return nil
}

func anyNonBlank(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}
