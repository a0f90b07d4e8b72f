package session

import (
	"errors"
	"fmt"

	"github.com/mzhao/legal-drafter/internal/types"
)

// ErrNoTemplate indicates a field operation before any template was selected.
var ErrNoTemplate = errors.New("no template selected")

// UnknownFieldError indicates a field id not present in the active template.
type UnknownFieldError struct {
	FieldID string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field: %s", e.FieldID)
}

// WrongKindError indicates an operation that does not apply to the field's kind,
// e.g. a repeatable-item operation on a scalar field.
type WrongKindError struct {
	FieldID string
	Kind    types.FieldKind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("operation not valid for field %s of kind %s", e.FieldID, e.Kind)
}
