package workflow

import (
	"errors"
	"fmt"
)

// ErrNoTemplate indicates generation was requested before a template was selected.
var ErrNoTemplate = errors.New("no template selected")

// ErrRequestInFlight indicates a second request while one is still running.
var ErrRequestInFlight = errors.New("a request is already in flight")

// IncompleteFormError indicates required fields are still empty.
type IncompleteFormError struct {
	TemplateID string
}

func (e *IncompleteFormError) Error() string {
	return fmt.Sprintf("form for template %s is incomplete", e.TemplateID)
}

// CompletionError wraps a failure from the chat-completion collaborator.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Cause)
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}
