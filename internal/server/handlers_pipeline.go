package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mzhao/legal-drafter/internal/export"
	"github.com/mzhao/legal-drafter/internal/extract"
	"github.com/mzhao/legal-drafter/internal/session"
	"github.com/mzhao/legal-drafter/internal/workflow"
)

// ExportRequest packages a document string as a downloadable artifact.
type ExportRequest struct {
	Content string `json:"content" validate:"required"`
	Title   string `json:"title"`
	Format  string `json:"format"` // "txt" (default) or "docx"
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// handleGenerate runs the generation pipeline for a session's form data. The
// session lock is held for the duration, so form mutations cannot interleave
// with an in-flight request.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var result *workflow.Result
	found, err := s.sessions.With(id, func(sess *session.Session) error {
		var err error
		result, err = s.workflow.GenerateDocument(r.Context(), sess)
		return err
	})
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyze accepts a multipart file upload, extracts its text, and runs
// the analysis pipeline over it.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxUpload := s.maxUpload
	if maxUpload <= 0 {
		maxUpload = extract.DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A 'file' upload is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	text, err := extract.ExtractText(header.Filename, data, maxUpload)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.workflow.AnalyzeText(r.Context(), text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleExport converts a document string into a downloadable artifact.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	result, err := export.Export(req.Content, req.Title, export.Format(req.Format))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
