package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mzhao/legal-drafter/internal/session"
)

// SessionResponse is the client view of one editing session.
type SessionResponse struct {
	ID         string              `json:"id"`
	TemplateID string              `json:"template_id,omitempty"`
	Complete   bool                `json:"complete"`
	Answers    map[string]string   `json:"answers"`
	Items      map[string][]string `json:"items"`
}

// SelectTemplateRequest selects the active template for a session.
type SelectTemplateRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
}

// Validate validates the SelectTemplateRequest using the validator.
func (r *SelectTemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SetFieldRequest carries one scalar field value. An empty value is legal;
// completeness is computed lazily, not enforced per write.
type SetFieldRequest struct {
	Value string `json:"value"`
}

// handleCreateSession creates a new empty editing session.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		ID:      id.String(),
		Answers: map[string]string{},
		Items:   map[string][]string{},
	})
}

// handleGetSession returns the current state of a session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var resp SessionResponse
	found, _ := s.sessions.With(id, func(sess *session.Session) error {
		resp = sessionView(id, sess)
		return nil
	})
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteSession discards a session and all its form data.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectTemplate replaces the session's active template, clearing all
// previously entered data.
func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var req SelectTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "template_id is required")
		return
	}

	tmpl := s.catalog.ByID(req.TemplateID)
	if tmpl == nil {
		s.errorResponse(w, http.StatusNotFound, "Template not found")
		return
	}

	var resp SessionResponse
	found, _ := s.sessions.With(id, func(sess *session.Session) error {
		sess.SelectTemplate(tmpl)
		resp = sessionView(id, sess)
		return nil
	})
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSetField overwrites the scalar answer for one field.
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.mutateSession(w, id, func(sess *session.Session) error {
		return sess.SetFieldValue(r.PathValue("field_id"), req.Value)
	})
}

// handleAddItem appends one empty item to a repeatable field.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	s.mutateSession(w, id, func(sess *session.Session) error {
		return sess.AddRepeatableItem(r.PathValue("field_id"))
	})
}

// handleUpdateItem replaces the item at an index of a repeatable field.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.mutateSession(w, id, func(sess *session.Session) error {
		return sess.UpdateRepeatableItem(r.PathValue("field_id"), index, req.Value)
	})
}

// handleRemoveItem removes the item at an index of a repeatable field.
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	s.mutateSession(w, id, func(sess *session.Session) error {
		return sess.RemoveRepeatableItem(r.PathValue("field_id"), index)
	})
}

// sessionID parses the session id path value, writing a 400 on failure.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// mutateSession runs a session mutation and writes the updated session view,
// mapping domain errors to HTTP statuses.
func (s *Server) mutateSession(w http.ResponseWriter, id uuid.UUID, fn func(*session.Session) error) {
	var resp SessionResponse
	found, err := s.sessions.With(id, func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		resp = sessionView(id, sess)
		return nil
	})
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// sessionView builds the client view of a session. Caller holds the session lock.
func sessionView(id uuid.UUID, sess *session.Session) SessionResponse {
	resp := SessionResponse{
		ID:       id.String(),
		Complete: sess.IsComplete(),
		Answers:  map[string]string{},
		Items:    map[string][]string{},
	}

	tmpl := sess.Template()
	if tmpl == nil {
		return resp
	}
	resp.TemplateID = tmpl.ID

	snap := sess.Snapshot()
	resp.Answers = snap.Answers
	resp.Items = snap.Items
	return resp
}
