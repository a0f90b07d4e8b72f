// Package types provides type definitions for structured data used throughout the legal-drafter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FieldKind identifies the editing widget category for a template field.
type FieldKind string

const (
	// KindShortText is a single-line free-text field.
	KindShortText FieldKind = "short_text"
	// KindLongText is a multi-line free-text field.
	KindLongText FieldKind = "long_text"
	// KindDate is a calendar date field.
	KindDate FieldKind = "date"
	// KindChoice is an enumerated single-choice field.
	KindChoice FieldKind = "choice"
	// KindRepeatable is an ordered, user-extensible list of free-text items
	// (e.g., numbered claims in a complaint).
	KindRepeatable FieldKind = "repeatable"
)

// Valid reports whether k is one of the known field kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindShortText, KindLongText, KindDate, KindChoice, KindRepeatable:
		return true
	}
	return false
}

// FormField describes one input field of a document template.
type FormField struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"` // choice kind only
}

// DocumentTemplate is the declarative description of one document type.
// Templates are loaded once at startup and never mutated at runtime.
type DocumentTemplate struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Category string      `json:"category"`
	Fields   []FormField `json:"fields"`
}

// Field returns the field with the given id, or nil if the template has no such field.
func (t *DocumentTemplate) Field(id string) *FormField {
	for i := range t.Fields {
		if t.Fields[i].ID == id {
			return &t.Fields[i]
		}
	}
	return nil
}
