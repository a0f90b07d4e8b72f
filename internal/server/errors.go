// Package server provides the HTTP REST API for the legal drafter.
package server

import (
	"errors"
	"net/http"

	"github.com/mzhao/legal-drafter/internal/export"
	"github.com/mzhao/legal-drafter/internal/extract"
	"github.com/mzhao/legal-drafter/internal/session"
	"github.com/mzhao/legal-drafter/internal/workflow"
)

// HTTPStatus returns the appropriate HTTP status code for a domain error.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrNoTemplate), errors.Is(err, workflow.ErrNoTemplate):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrRequestInFlight):
		return http.StatusConflict
	case errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrDOCXDependencyMissing):
		return http.StatusNotImplemented
	}

	var unknownField *session.UnknownFieldError
	var wrongKind *session.WrongKindError
	var incomplete *workflow.IncompleteFormError
	var completion *workflow.CompletionError
	var unsupported *extract.UnsupportedFormatError
	var tooLarge *extract.FileTooLargeError
	var extraction *extract.ExtractionError

	switch {
	case errors.As(err, &unknownField):
		return http.StatusNotFound
	case errors.As(err, &wrongKind):
		return http.StatusBadRequest
	case errors.As(err, &incomplete):
		return http.StatusUnprocessableEntity
	case errors.As(err, &completion):
		return http.StatusBadGateway
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
